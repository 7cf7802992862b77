// cmd/tichu-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OliverKovacs/hybrid-tichu/engine"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/auth"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/bot"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/cache"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/config"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/game"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/logging"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/server"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration.")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid logging configuration.")
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server stopped with error.")
	}
	logger.Info("Server stopped.")
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules := engine.DefaultRules()
	rules.TargetScore = cfg.TargetScore
	table := game.NewTable(rules, uint64(time.Now().UnixNano()), cfg.SubscriberBuffer, logger)
	logger.WithFields(logrus.Fields{"table": table.ID, "target": rules.TargetScore}).Info("Table created.")

	srv := server.New(table, auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), cfg.ReconnectGrace, logger)
	defer srv.Close()
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.RedisAddr != "" {
		rdb, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		publisher := cache.NewPublisher(rdb, table, logger)
		g.Go(func() error { return publisher.Run(ctx) })
		logger.WithField("addr", cfg.RedisAddr).Info("Publishing snapshots to Redis.")
	}

	for _, place := range cfg.Bots {
		b := bot.NewAutopass(table, place, cfg.BotDelay, logger)
		g.Go(func() error { return b.Run(ctx) })
	}

	g.Go(func() error {
		logger.WithField("addr", cfg.Addr).Info("Listening.")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
