// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/OliverKovacs/hybrid-tichu/engine"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/auth"
	"github.com/OliverKovacs/hybrid-tichu/service/internal/game"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// pendingLeave is a scheduled leave for a seat whose connection dropped.
type pendingLeave struct {
	name  string
	timer *time.Timer
}

// Server maps WebSocket connections onto the seats of one table.
type Server struct {
	table *game.Table
	auth  *auth.Issuer
	grace time.Duration
	log   *logrus.Entry

	mu       sync.Mutex
	attached map[int]uuid.UUID     // seat -> session currently driving it
	pending  map[int]*pendingLeave // seat -> leave scheduled after a disconnect
}

// New returns a Server for table. A dropped connection keeps its seat for grace.
func New(table *game.Table, issuer *auth.Issuer, grace time.Duration, logger *logrus.Logger) *Server {
	return &Server{
		table:    table,
		auth:     issuer,
		grace:    grace,
		log:      logger.WithField("table", table.ID),
		attached: make(map[int]uuid.UUID),
		pending:  make(map[int]*pendingLeave),
	}
}

// Handler returns the HTTP routes: /ws, /state and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Close cancels every scheduled leave. Seats stay as they are.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for place, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, place)
		s.log.WithFields(logrus.Fields{"place": place, "name": p.name}).Debug("Pending leave cancelled.")
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.table.State()); err != nil {
		s.log.WithError(err).Error("Failed to write state response.")
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.WithError(err).Warn("WebSocket upgrade failed.")
		return
	}
	defer conn.CloseNow()

	sess := &session{
		id:    uuid.New(),
		srv:   s,
		conn:  conn,
		place: -1,
	}
	sess.log = s.log.WithField("session", sess.id)
	sess.log.Debug("Connection opened.")
	sess.serve(r.Context())
}

// ---------------------------------------------------------------------------
// Seat bookkeeping
// ---------------------------------------------------------------------------

// attach makes session the driver of place and cancels a pending leave.
func (s *Server) attach(place int, session uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached[place] = session
	if p, ok := s.pending[place]; ok {
		p.timer.Stop()
		delete(s.pending, place)
	}
}

// release forgets the driver of place after an explicit leave.
func (s *Server) release(place int, session uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached[place] == session {
		delete(s.attached, place)
	}
}

// detach handles a dropped connection. If session still drives place, the
// seat is left after the grace period unless a resume comes first.
func (s *Server) detach(place int, name string, session uuid.UUID) {
	s.mu.Lock()
	if s.attached[place] != session {
		s.mu.Unlock()
		return
	}
	delete(s.attached, place)

	if s.grace <= 0 {
		s.mu.Unlock()
		s.expire(place, name)
		return
	}
	p := &pendingLeave{name: name}
	p.timer = time.AfterFunc(s.grace, func() {
		s.mu.Lock()
		if s.pending[place] != p {
			s.mu.Unlock()
			return
		}
		delete(s.pending, place)
		s.mu.Unlock()
		s.expire(place, name)
	})
	s.pending[place] = p
	s.mu.Unlock()
}

func (s *Server) expire(place int, name string) {
	if s.table.Vacate(place, name) {
		s.log.WithFields(logrus.Fields{"place": place, "name": name}).Info("Seat released after disconnect.")
	}
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// session is one connection. Only serve writes to conn.
type session struct {
	id    uuid.UUID
	srv   *Server
	conn  *websocket.Conn
	place int // -1 until seated
	name  string
	log   *logrus.Entry
}

// serve runs the connection until it closes. A request's ack is written
// before any snapshot it caused, because snapshots are only drained between
// requests.
func (ss *session) serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	subID, updates := ss.srv.table.Subscribe()
	defer ss.srv.table.Unsubscribe(subID)
	defer ss.disconnect()

	requests := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := ss.conn.Read(ctx)
			if err != nil {
				readErr <- err
				return
			}
			select {
			case requests <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-readErr:
			if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				ss.log.Debug("Connection closed.")
			} else {
				ss.log.WithError(err).Debug("Connection read failed.")
			}
			return
		case data := <-requests:
			if err := ss.handle(ctx, data); err != nil {
				ss.log.WithError(err).Warn("Failed to write reply.")
				return
			}
		case st, ok := <-updates:
			if !ok {
				return
			}
			if err := ss.write(ctx, Message{Type: TypeUpdate, State: &st}); err != nil {
				ss.log.WithError(err).Warn("Failed to push update.")
				return
			}
		}
	}
}

func (ss *session) write(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, ss.conn, msg)
}

// handle runs one request and writes its ack.
func (ss *session) handle(ctx context.Context, data []byte) error {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return ss.write(ctx, Message{Type: TypeAck, Result: ResultInvalidRequest})
	}

	entry := ss.log.WithField("action", req.Action)
	ack := Message{Type: TypeAck, ID: req.ID}
	table := ss.srv.table
	var push *engine.State

	switch req.Action {
	case ActionJoin:
		if ss.place >= 0 {
			ack.Result = ResultAlreadySeated
			break
		}
		err := table.Join(req.Name, req.Place)
		ack.Result = engine.Result(err)
		if err != nil {
			break
		}
		token, err := ss.srv.auth.Issue(table.ID, req.Place, req.Name)
		if err != nil {
			// A seat that cannot be resumed is given back.
			entry.WithError(err).Error("Failed to issue seat token.")
			table.Vacate(req.Place, req.Name)
			ack.Result = ResultNoToken
			break
		}
		ss.seat(req.Place, req.Name)
		ack.Token = token

	case ActionResume:
		claims, err := ss.srv.auth.Verify(table.ID, req.Token)
		if err != nil {
			entry.WithError(err).Debug("Resume rejected.")
			ack.Result = ResultInvalidToken
			break
		}
		if !table.Holds(claims.Place, claims.Name) {
			ack.Result = ResultSeatLost
			break
		}
		if ss.place >= 0 && ss.place != claims.Place {
			ack.Result = ResultAlreadySeated
			break
		}
		ss.seat(claims.Place, claims.Name)
		ack.Result = engine.ResultOK
		st := table.State()
		push = &st

	case ActionTichu:
		ack.Result = engine.Result(table.Tichu(ss.place, engine.TichuType(req.Tichu)))

	case ActionExchange:
		ack.Result = engine.Result(table.Exchange(ss.place, parseCards(req.Cards)))

	case ActionPlay:
		ack.Result = engine.Result(table.Play(ss.place, parseCards(req.Cards)))

	case ActionLeave:
		err := table.Leave(ss.place)
		ack.Result = engine.Result(err)
		if err == nil {
			ss.srv.release(ss.place, ss.id)
			ss.place, ss.name = -1, ""
			ss.log = ss.log.WithField("place", -1)
		}

	default:
		ack.Result = engine.Result(game.ErrUnknownAction)
	}

	entry.WithField("result", ack.Result).Debug("Request handled.")
	if err := ss.write(ctx, ack); err != nil {
		return err
	}
	if push != nil {
		return ss.write(ctx, Message{Type: TypeUpdate, State: push})
	}
	return nil
}

func (ss *session) seat(place int, name string) {
	ss.place, ss.name = place, name
	ss.log = ss.log.WithField("place", place)
	ss.srv.attach(place, ss.id)
}

func (ss *session) disconnect() {
	if ss.place < 0 {
		return
	}
	ss.srv.detach(ss.place, ss.name, ss.id)
}
