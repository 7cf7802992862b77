// internal/server/protocol.go
package server

import "github.com/OliverKovacs/hybrid-tichu/engine"

// Request actions. All but join and resume act for the connection's seat.
const (
	ActionJoin     = "join"
	ActionResume   = "resume"
	ActionTichu    = "tichu"
	ActionExchange = "exchange"
	ActionPlay     = "play"
	ActionLeave    = "leave"
)

// Message types written by the server.
const (
	TypeAck    = "ack"
	TypeUpdate = "update"
)

// Transport-level failure codes, reported in Message.Result like rule errors.
const (
	ResultInvalidRequest = "invalid request"
	ResultInvalidToken   = "invalid token"
	ResultSeatLost       = "seat lost"
	ResultAlreadySeated  = "already seated"
	ResultNoToken        = "token unavailable"
)

// Request is one client frame.
type Request struct {
	ID     string   `json:"id"`
	Action string   `json:"action"`
	Name   string   `json:"name,omitempty"`  // join
	Place  int      `json:"place,omitempty"` // join
	Cards  []string `json:"cards,omitempty"` // exchange, play
	Tichu  string   `json:"tichu,omitempty"` // tichu
	Token  string   `json:"token,omitempty"` // resume
}

// Message is one server frame: an ack for a request or a state push.
type Message struct {
	Type   string        `json:"type"`
	ID     string        `json:"id,omitempty"`
	Result string        `json:"result,omitempty"`
	Token  string        `json:"token,omitempty"` // successful join
	State  *engine.State `json:"state,omitempty"`
}

// parseCards normalizes client card codes. Validation is left to the engine.
func parseCards(codes []string) []engine.CardID {
	cards := make([]engine.CardID, len(codes))
	for i, code := range codes {
		cards[i] = engine.ParseCardID(code)
	}
	return cards
}
