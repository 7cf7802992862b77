// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OliverKovacs/hybrid-tichu/engine"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/game"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// StateChannel is the pub/sub channel carrying every snapshot of a table.
func StateChannel(table uuid.UUID) string {
	return fmt.Sprintf("tichu:table:%s:state", table)
}

// SnapshotKey holds the latest snapshot of a table.
func SnapshotKey(table uuid.UUID) string {
	return fmt.Sprintf("tichu:table:%s:snapshot", table)
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Publisher mirrors a table's snapshots into Redis for other processes.
type Publisher struct {
	rdb   redis.Cmdable
	table *game.Table
	log   *logrus.Entry
}

// NewPublisher returns a Publisher for table. Call Run to start it.
func NewPublisher(rdb redis.Cmdable, table *game.Table, logger *logrus.Logger) *Publisher {
	return &Publisher{
		rdb:   rdb,
		table: table,
		log:   logger.WithFields(logrus.Fields{"table": table.ID, "component": "redis"}),
	}
}

// Run subscribes to the table and publishes every snapshot until ctx is done.
// Redis failures are logged and do not stop the publisher.
func (p *Publisher) Run(ctx context.Context) error {
	id, updates := p.table.Subscribe()
	defer p.table.Unsubscribe(id)

	p.publish(ctx, p.table.State())
	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-updates:
			if !ok {
				return nil
			}
			p.publish(ctx, s)
		}
	}
}

func (p *Publisher) publish(ctx context.Context, s engine.State) {
	payload, err := json.Marshal(s)
	if err != nil {
		p.log.WithError(err).Error("Failed to encode snapshot.")
		return
	}

	pipe := p.rdb.TxPipeline()
	pipe.Set(ctx, SnapshotKey(p.table.ID), payload, 0)
	pipe.Publish(ctx, StateChannel(p.table.ID), payload)
	if _, err := pipe.Exec(ctx); err != nil && ctx.Err() == nil {
		p.log.WithError(err).Error("Failed to publish snapshot.")
	}
}
