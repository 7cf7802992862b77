// internal/bot/autopass.go
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/OliverKovacs/hybrid-tichu/engine"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/game"
	"github.com/sirupsen/logrus"
)

// Autopass is the simplest seat filler: it stages its first three cards,
// leads its lowest card when the stack is empty and passes otherwise.
// It uses the same action API as a human connection.
type Autopass struct {
	Place int
	Name  string

	table *game.Table
	delay time.Duration
	log   *logrus.Entry
}

// NewAutopass creates a bot for place. delay is the pause before each action.
func NewAutopass(table *game.Table, place int, delay time.Duration, logger *logrus.Logger) *Autopass {
	name := fmt.Sprintf("autopass-%d", place)
	return &Autopass{
		Place: place,
		Name:  name,
		table: table,
		delay: delay,
		log:   logger.WithFields(logrus.Fields{"table": table.ID, "bot": name, "place": place}),
	}
}

// Run joins the table and reacts to snapshots until ctx is done, then gives
// the seat back.
func (b *Autopass) Run(ctx context.Context) error {
	id, updates := b.table.Subscribe()
	defer b.table.Unsubscribe(id)

	if err := b.table.Join(b.Name, b.Place); err != nil {
		return fmt.Errorf("bot %s joining: %w", b.Name, err)
	}
	defer b.table.Vacate(b.Place, b.Name)
	b.log.Info("Bot seated.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-updates:
			if !ok {
				return nil
			}
		}
		skipStale(updates)

		if b.decide(b.table.State()) == nil {
			continue
		}
		if b.delay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(b.delay):
			}
		}
		// the table may have moved on while waiting
		action := b.decide(b.table.State())
		if action == nil {
			continue
		}
		if err := b.table.Dispatch(*action); err != nil {
			b.log.WithField("action", action.Type).WithError(err).Debug("Bot action rejected.")
		}
	}
}

// skipStale discards snapshots already queued; decisions read the live state.
func skipStale(updates <-chan engine.State) {
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// decide returns the bot's next action for s, or nil when it has nothing to do.
func (b *Autopass) decide(s engine.State) *game.Action {
	self := s.Table[b.Place]
	if self == nil || self.Name != b.Name {
		return nil
	}

	switch s.Status {
	case engine.StatusExchange:
		if len(self.Exchange) != 0 || len(self.Cards) < 3 {
			return nil
		}
		cards := append([]engine.CardID{}, self.Cards[:3]...)
		return &game.Action{Type: game.ActionExchange, Place: b.Place, Cards: cards}
	case engine.StatusRunning:
		if s.Current != b.Place || len(self.Cards) == 0 {
			return nil
		}
		if len(s.Stack) > 0 {
			return &game.Action{Type: game.ActionPlay, Place: b.Place}
		}
		return &game.Action{Type: game.ActionPlay, Place: b.Place, Cards: []engine.CardID{lowest(self.Cards)}}
	}
	return nil
}

// lowest returns the lowest ranked card in hand. The Dog and the Phoenix
// are only chosen when nothing else is left.
func lowest(hand []engine.CardID) engine.CardID {
	best, bestValue := hand[0], engine.ValueDragon+1
	for _, id := range hand {
		c, err := engine.Get(id)
		if err != nil || c.Value == engine.NoValue {
			continue
		}
		if c.Value < bestValue {
			best, bestValue = id, c.Value
		}
	}
	return best
}
