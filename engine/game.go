// Package engine implements the Tichu rules.
//
// It holds the card model, the combination classifier and the round/match
// state machine for one table. A Game is not safe for concurrent use; the
// service layer serializes every action through a single lock.
package engine

// Player is one occupied seat.
type Player struct {
	Name     string    `json:"name"`
	Place    int       `json:"place"`
	Cards    []CardID  `json:"cards"`
	Tricks   []CardID  `json:"tricks"`
	Tichu    TichuType `json:"tichu"`
	Exchange []CardID  `json:"exchange"`
}

func (p *Player) clone() *Player {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Cards = cloneCards(p.Cards)
	cp.Tricks = cloneCards(p.Tricks)
	cp.Exchange = cloneCards(p.Exchange)
	return &cp
}

// resetRound clears everything a player accumulates during a round.
func (p *Player) resetRound() {
	p.Cards = []CardID{}
	p.Tricks = []CardID{}
	p.Tichu = TichuNone
	p.Exchange = []CardID{}
}

// State is the full table state broadcast after every accepted action.
type State struct {
	Status    Status            `json:"status"`
	Stack     []Combination     `json:"stack"`
	Table     [NumSeats]*Player `json:"table"`
	Score     [2]int            `json:"score"`
	Ranking   []int             `json:"ranking"`
	Current   int               `json:"current"`
	LastTrick int               `json:"lastTrick"`
}

// Clone returns a deep copy that shares nothing with s.
func (s *State) Clone() State {
	cp := *s
	cp.Stack = make([]Combination, len(s.Stack))
	for i, c := range s.Stack {
		c.Cards = cloneCards(c.Cards)
		cp.Stack[i] = c
	}
	for i, p := range s.Table {
		cp.Table[i] = p.clone()
	}
	cp.Ranking = append([]int{}, s.Ranking...)
	return cp
}

// Seated returns the number of occupied seats.
func (s *State) Seated() int {
	n := 0
	for _, p := range s.Table {
		if p != nil {
			n++
		}
	}
	return n
}

// Team returns the partnership a seat belongs to.
func Team(place int) int { return place % 2 }

// Partner returns the seat across the table.
func Partner(place int) int { return (place + 2) % NumSeats }

func cloneCards(ids []CardID) []CardID {
	out := make([]CardID, len(ids))
	copy(out, ids)
	return out
}

// ---------------------------------------------------------------------------
// Game
// ---------------------------------------------------------------------------

// Game is the state machine for one table.
type Game struct {
	state State
	rules Rules
	rng   uint64

	// OnUpdate receives a snapshot after every accepted action.
	OnUpdate func(State)
}

// NewGame creates an empty table. The seed drives every deal.
func NewGame(seed uint64, rules Rules) *Game {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return &Game{
		state: State{
			Status:    StatusWaiting,
			Stack:     []Combination{},
			Ranking:   []int{},
			Current:   -1,
			LastTrick: -1,
		},
		rules: rules,
		rng:   seed,
	}
}

// State returns a deep copy of the current state.
func (g *Game) State() State { return g.state.Clone() }

func (g *Game) update() {
	if g.OnUpdate != nil {
		g.OnUpdate(g.state.Clone())
	}
}

func (g *Game) nextRand() uint64 {
	x := g.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.rng = x
	return x
}

// seated reports whether place names an occupied seat.
func (g *Game) seated(place int) bool {
	return place >= 0 && place < NumSeats && g.state.Table[place] != nil
}

func (g *Game) hasCards(place int) bool {
	p := g.state.Table[place]
	return p != nil && len(p.Cards) > 0
}

// nextWithCards returns the first seat from place onwards that still holds cards.
func (g *Game) nextWithCards(place int) int {
	for i := 0; i < NumSeats; i++ {
		seat := (place + i) % NumSeats
		if g.hasCards(seat) {
			return seat
		}
	}
	return place % NumSeats
}

// holderOf returns the seat holding id, or -1.
func (g *Game) holderOf(id CardID) int {
	for place, p := range g.state.Table {
		if p != nil && IndexOf(id, p.Cards) != -1 {
			return place
		}
	}
	return -1
}

// start shuffles the deck, deals it one card at a time round-robin and opens
// the exchange phase with the Mah Jong holder to act.
func (g *Game) start() {
	cards := Deck()
	for i := len(cards) - 1; i > 0; i-- {
		j := int(g.nextRand() % uint64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}

	for _, p := range g.state.Table {
		p.resetRound()
	}
	for i, id := range cards {
		p := g.state.Table[i%NumSeats]
		p.Cards = append(p.Cards, id)
	}

	g.state.Stack = []Combination{}
	g.state.Ranking = []int{}
	g.state.LastTrick = -1
	g.state.Current = g.holderOf(MahJong)
	g.state.Status = StatusExchange
	g.update()
}
