// internal/game/table.go
package game

import (
	"sync"

	"github.com/OliverKovacs/hybrid-tichu/engine"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ActionType names an entry point of the action API.
type ActionType string

// Actions accepted by Dispatch.
const (
	ActionJoin     ActionType = "join"
	ActionTichu    ActionType = "tichu"
	ActionExchange ActionType = "exchange"
	ActionPlay     ActionType = "play"
	ActionLeave    ActionType = "leave"
)

// ErrUnknownAction is returned by Dispatch for an action it does not know.
const ErrUnknownAction = engine.RuleError("unknown action")

// Action is one invocation of the action API. Fields not used by Type are ignored.
type Action struct {
	Type  ActionType
	Name  string           // join
	Place int              // acting seat
	Cards []engine.CardID  // exchange, play
	Tichu engine.TichuType // tichu
}

// Table owns one engine instance and serializes every action against it.
// Snapshots are fanned out to subscribers while the lock is held, so every
// subscriber observes them in action order.
type Table struct {
	ID uuid.UUID

	mu          sync.Mutex
	engine      *engine.Game
	subscribers map[uuid.UUID]chan engine.State
	buffer      int // per-subscriber channel capacity

	log *logrus.Entry
}

// NewTable creates an empty table. buffer is the capacity of each subscriber
// channel and is raised to 1 if smaller.
func NewTable(rules engine.Rules, seed uint64, buffer int, logger *logrus.Logger) *Table {
	if buffer < 1 {
		buffer = 1
	}
	t := &Table{
		ID:          uuid.New(),
		engine:      engine.NewGame(seed, rules),
		subscribers: make(map[uuid.UUID]chan engine.State),
		buffer:      buffer,
	}
	t.log = logger.WithField("table", t.ID)
	t.engine.OnUpdate = t.broadcastLocked
	return t
}

// Subscribe registers a new snapshot receiver. The channel is closed by Unsubscribe.
func (t *Table) Subscribe() (uuid.UUID, <-chan engine.State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := uuid.New()
	ch := make(chan engine.State, t.buffer)
	t.subscribers[id] = ch
	t.log.WithField("subscriber", id).Debug("Subscriber added.")
	return id, ch
}

// Unsubscribe removes a receiver and closes its channel. Unknown ids are ignored.
func (t *Table) Unsubscribe(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch, ok := t.subscribers[id]
	if !ok {
		return
	}
	delete(t.subscribers, id)
	close(ch)
	t.log.WithField("subscriber", id).Debug("Subscriber removed.")
}

// broadcastLocked delivers a snapshot to every subscriber without blocking.
// A subscriber that has fallen behind loses its oldest pending snapshot.
// Assumes lock is held by caller.
func (t *Table) broadcastLocked(s engine.State) {
	for id, ch := range t.subscribers {
		select {
		case ch <- s:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
		t.log.WithField("subscriber", id).Warn("Subscriber channel full, dropped oldest snapshot.")
	}
}

// Dispatch runs one action under the table lock.
func (t *Table) Dispatch(a Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dispatchLocked(a)
}

// dispatchLocked routes an action to the engine and logs the outcome.
// Assumes lock is held by caller.
func (t *Table) dispatchLocked(a Action) error {
	var err error
	switch a.Type {
	case ActionJoin:
		err = t.engine.Join(a.Name, a.Place)
	case ActionTichu:
		err = t.engine.Tichu(a.Place, a.Tichu)
	case ActionExchange:
		err = t.engine.Exchange(a.Place, a.Cards)
	case ActionPlay:
		err = t.engine.Play(a.Place, a.Cards)
	case ActionLeave:
		err = t.engine.Leave(a.Place)
	default:
		err = ErrUnknownAction
	}

	entry := t.log.WithFields(logrus.Fields{"action": a.Type, "place": a.Place})
	if len(a.Cards) > 0 {
		entry = entry.WithField("cards", a.Cards)
	}
	if err != nil {
		entry.WithField("reason", err.Error()).Debug("Action rejected.")
		return err
	}
	entry.Debug("Action accepted.")
	return nil
}

// Join seats name at place.
func (t *Table) Join(name string, place int) error {
	return t.Dispatch(Action{Type: ActionJoin, Name: name, Place: place})
}

// Tichu records a declaration for place.
func (t *Table) Tichu(place int, tichu engine.TichuType) error {
	return t.Dispatch(Action{Type: ActionTichu, Place: place, Tichu: tichu})
}

// Exchange stages three cards for place.
func (t *Table) Exchange(place int, cards []engine.CardID) error {
	return t.Dispatch(Action{Type: ActionExchange, Place: place, Cards: cards})
}

// Play plays cards for place; no cards is a pass.
func (t *Table) Play(place int, cards []engine.CardID) error {
	return t.Dispatch(Action{Type: ActionPlay, Place: place, Cards: cards})
}

// Leave vacates place.
func (t *Table) Leave(place int) error {
	return t.Dispatch(Action{Type: ActionLeave, Place: place})
}

// Vacate leaves place only if name still holds it. It reports whether the
// seat was vacated.
func (t *Table) Vacate(place int, name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.holdsLocked(place, name) {
		return false
	}
	return t.dispatchLocked(Action{Type: ActionLeave, Place: place}) == nil
}

// Holds reports whether name currently occupies place.
func (t *Table) Holds(place int, name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.holdsLocked(place, name)
}

// holdsLocked assumes lock is held by caller.
func (t *Table) holdsLocked(place int, name string) bool {
	if place < 0 || place >= engine.NumSeats {
		return false
	}
	p := t.engine.State().Table[place]
	return p != nil && p.Name == name
}

// State returns a deep copy of the current state.
func (t *Table) State() engine.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.State()
}
