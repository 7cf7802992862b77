package engine

import "testing"

// stageAll has every seat stage the first three cards of its hand and
// returns what each seat staged.
func stageAll(t *testing.T, g *Game) [NumSeats][]CardID {
	t.Helper()
	var staged [NumSeats][]CardID
	for place := 0; place < NumSeats; place++ {
		cards := append([]CardID{}, g.state.Table[place].Cards[:3]...)
		staged[place] = cards
		if err := g.Exchange(place, cards); err != nil {
			t.Fatalf("Exchange(%d): %v", place, err)
		}
	}
	return staged
}

func TestExchange(t *testing.T) {
	g := newFullTable(t, 11)

	for place := 0; place < NumSeats-1; place++ {
		cards := g.state.Table[place].Cards[:3]
		if err := g.Exchange(place, cards); err != nil {
			t.Fatalf("Exchange(%d): %v", place, err)
		}
		if g.state.Status != StatusExchange {
			t.Fatalf("Status = %s after %d stagings, want exchange", g.state.Status, place+1)
		}
		if n := len(g.state.Table[place].Cards); n != 14 {
			t.Fatalf("seat %d holds %d cards while staging, want 14", place, n)
		}
	}

	var staged [NumSeats][]CardID
	for place := 0; place < NumSeats-1; place++ {
		staged[place] = g.state.Table[place].Exchange
	}
	staged[3] = append([]CardID{}, g.state.Table[3].Cards[:3]...)
	if err := g.Exchange(3, staged[3]); err != nil {
		t.Fatalf("Exchange(3): %v", err)
	}

	s := g.State()
	if s.Status != StatusRunning {
		t.Fatalf("Status = %s, want running", s.Status)
	}
	for place, p := range s.Table {
		if len(p.Cards) != 14 {
			t.Errorf("seat %d holds %d cards, want 14", place, len(p.Cards))
		}
		if len(p.Exchange) != 0 {
			t.Errorf("seat %d still has staged cards", place)
		}
		for i, id := range staged[place] {
			to := (place + 1 + i) % NumSeats
			if IndexOf(id, s.Table[to].Cards) == -1 {
				t.Errorf("%s from seat %d not in seat %d", id, place, to)
			}
		}
		if IndexOf(MahJong, p.Cards) != -1 && s.Current != place {
			t.Errorf("Current = %d, want Mah Jong holder %d", s.Current, place)
		}
	}
	if s.LastTrick != -1 {
		t.Errorf("LastTrick = %d, want -1", s.LastTrick)
	}
}

// TestExchangeRestage verifies a seat may replace its staged cards.
func TestExchangeRestage(t *testing.T) {
	g := newFullTable(t, 12)
	hand := g.state.Table[0].Cards
	if err := g.Exchange(0, hand[:3]); err != nil {
		t.Fatal(err)
	}
	if err := g.Exchange(0, hand[3:6]); err != nil {
		t.Fatal(err)
	}
	if got := g.state.Table[0].Exchange[0]; got != hand[3].Normalize() {
		t.Errorf("Exchange[0] = %s, want %s", got, hand[3])
	}
}

func TestExchangeErrors(t *testing.T) {
	g := newFullTable(t, 13)
	hand := g.state.Table[0].Cards
	other := g.state.Table[1].Cards

	tests := []struct {
		name  string
		place int
		cards []CardID
		want  error
	}{
		{"unseated", 7, hand[:3], ErrInvalidPlace},
		{"invalid card", 0, []CardID{hand[0], hand[1], "zz"}, ErrInvalidCard},
		{"two cards", 0, hand[:2], ErrWrongCardCount},
		{"four cards", 0, hand[:4], ErrWrongCardCount},
		{"not owned", 0, []CardID{hand[0], hand[1], other[0]}, ErrNotOwned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.Exchange(tt.place, tt.cards); err != tt.want {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	stageAll(t, g)
	if err := g.Exchange(0, g.state.Table[0].Cards[:3]); err != ErrCannotExchange {
		t.Errorf("exchange while running: err = %v, want %v", err, ErrCannotExchange)
	}
}

func TestTichu(t *testing.T) {
	g := NewGame(1, DefaultRules())
	if err := g.Join("a", 0); err != nil {
		t.Fatal(err)
	}
	if err := g.Tichu(1, TichuNormal); err != ErrInvalidPlace {
		t.Errorf("unseated: err = %v, want %v", err, ErrInvalidPlace)
	}
	if err := g.Tichu(0, TichuUnknown); err != ErrInvalidTichu {
		t.Errorf("unknown: err = %v, want %v", err, ErrInvalidTichu)
	}
	if err := g.Tichu(0, TichuNormal); err != ErrCannotTichu {
		t.Errorf("while waiting: err = %v, want %v", err, ErrCannotTichu)
	}

	g = newFullTable(t, 2)
	if err := g.Tichu(0, TichuGrand); err != nil {
		t.Fatalf("Tichu during exchange: %v", err)
	}
	if got := g.State().Table[0].Tichu; got != TichuGrand {
		t.Errorf("Tichu = %s, want grand", got)
	}
	stageAll(t, g)
	if err := g.Tichu(1, TichuNormal); err != nil {
		t.Errorf("Tichu while running: %v", err)
	}

	g = runningGame(t, 0, [NumSeats][]CardID{{"s2"}, {"s3"}, {"s4"}, {}})
	if err := g.Tichu(3, TichuNormal); err != ErrCannotTichu {
		t.Errorf("out of cards: err = %v, want %v", err, ErrCannotTichu)
	}
}

// ---------------------------------------------------------------------------
// Trick play
// ---------------------------------------------------------------------------

var playHands = [NumSeats][]CardID{
	{"s2", "r2", "s3", Dog, Phoenix, "sK"},
	{"r4", "r5", "g6", "b7"},
	{"s9", "r9", "g9", "b9", "gA"},
	{"bQ", "gQ", "rJ"},
}

func TestPlayErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup [][]CardID // plays made by seats in turn order before the tested one
		place int
		cards []CardID
		want  error
	}{
		{"unseated", nil, 5, []CardID{"s2"}, ErrInvalidPlace},
		{"invalid card", nil, 0, []CardID{"zz"}, ErrInvalidCard},
		{"not owned", nil, 0, []CardID{"sA"}, ErrNotOwned},
		{"not a combination", nil, 0, []CardID{"s2", "sK"}, ErrNotCombination},
		{"out of turn", nil, 1, []CardID{"r4"}, ErrNotBomb},
		{"pass on empty stack", nil, 0, nil, ErrCannotPassEmpty},
		{"single on pair", [][]CardID{{"s2", "r2"}}, 1, []CardID{"r4"}, ErrNotCompatible},
		{"too low", [][]CardID{{"sK"}}, 1, []CardID{"r4"}, ErrNotHighEnough},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := runningGame(t, 0, playHands)
			for i, cards := range tt.setup {
				if err := g.Play(i, cards); err != nil {
					t.Fatalf("setup play %v: %v", cards, err)
				}
			}
			before := g.State()
			if err := g.Play(tt.place, tt.cards); err != tt.want {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			after := g.State()
			if len(after.Stack) != len(before.Stack) || after.Current != before.Current {
				t.Error("rejected play changed the table")
			}
		})
	}

	g := NewGame(1, DefaultRules())
	if err := g.Join("a", 0); err != nil {
		t.Fatal(err)
	}
	if err := g.Play(0, []CardID{"s2"}); err != ErrCannotPlay {
		t.Errorf("while waiting: err = %v, want %v", err, ErrCannotPlay)
	}
}

// TestPassesCollectTrick verifies three passes hand the trick to the last player.
func TestPassesCollectTrick(t *testing.T) {
	g := runningGame(t, 0, playHands)
	if err := g.Play(0, []CardID{"s3"}); err != nil {
		t.Fatal(err)
	}
	if g.state.Current != 1 || g.state.LastTrick != 0 {
		t.Fatalf("Current/LastTrick = %d/%d, want 1/0", g.state.Current, g.state.LastTrick)
	}
	for place := 1; place < NumSeats; place++ {
		if err := g.Play(place, nil); err != nil {
			t.Fatalf("pass by %d: %v", place, err)
		}
	}

	s := g.State()
	if len(s.Stack) != 0 {
		t.Errorf("Stack = %v, want empty", s.Stack)
	}
	if s.Current != 0 || s.LastTrick != -1 {
		t.Errorf("Current/LastTrick = %d/%d, want 0/-1", s.Current, s.LastTrick)
	}
	if len(s.Table[0].Tricks) != 1 || s.Table[0].Tricks[0] != "s3" {
		t.Errorf("Tricks = %v, want [s3]", s.Table[0].Tricks)
	}
	if IndexOf("s3", s.Table[0].Cards) != -1 {
		t.Error("s3 still in hand")
	}
}

// TestPlayPhoenixStandIn verifies a stand-in removes the Phoenix from the hand
// and the trick stores it normalized.
func TestPlayPhoenixStandIn(t *testing.T) {
	g := runningGame(t, 0, playHands)
	if err := g.Play(0, []CardID{"x3", "s3"}); err != nil {
		t.Fatal(err)
	}
	s := g.State()
	if IndexOf(Phoenix, s.Table[0].Cards) != -1 {
		t.Error("Phoenix still in hand")
	}
	top := s.Stack[len(s.Stack)-1]
	if top.Type != TypePair || top.Value != 2 {
		t.Errorf("top = %s/%d, want pair/2", top.Type, top.Value)
	}
	for place := 1; place < NumSeats; place++ {
		if err := g.Play(place, nil); err != nil {
			t.Fatal(err)
		}
	}
	if IndexOf(Phoenix, g.state.Table[0].Tricks) == -1 {
		t.Errorf("Tricks = %v, want the Phoenix normalized", g.state.Table[0].Tricks)
	}
}

func TestDogPassesToPartner(t *testing.T) {
	g := runningGame(t, 0, playHands)
	if err := g.Play(0, []CardID{Dog}); err != nil {
		t.Fatal(err)
	}
	s := g.State()
	if s.Current != 2 {
		t.Errorf("Current = %d, want partner 2", s.Current)
	}
	if len(s.Stack) != 0 || s.LastTrick != -1 {
		t.Errorf("Stack/LastTrick = %v/%d, want empty/-1", s.Stack, s.LastTrick)
	}
	if len(s.Table[2].Tricks) != 1 || s.Table[2].Tricks[0] != Dog {
		t.Errorf("partner Tricks = %v, want [xH]", s.Table[2].Tricks)
	}

	// partner already out: the lead moves on
	hands := playHands
	hands[2] = []CardID{}
	g = runningGame(t, 0, hands)
	if err := g.Play(0, []CardID{Dog}); err != nil {
		t.Fatal(err)
	}
	if g.state.Current != 3 {
		t.Errorf("Current = %d, want 3", g.state.Current)
	}
}

// TestBombOutOfTurn verifies a bomb interrupts and takes over turn order.
func TestBombOutOfTurn(t *testing.T) {
	g := runningGame(t, 0, playHands)
	if err := g.Play(0, []CardID{"sK"}); err != nil {
		t.Fatal(err)
	}
	bomb := []CardID{"s9", "r9", "g9", "b9"}
	if err := g.Play(2, bomb); err != nil {
		t.Fatalf("bomb out of turn: %v", err)
	}
	if g.state.LastTrick != 2 || g.state.Current != 3 {
		t.Fatalf("LastTrick/Current = %d/%d, want 2/3", g.state.LastTrick, g.state.Current)
	}
	for _, place := range []int{3, 0, 1} {
		if err := g.Play(place, nil); err != nil {
			t.Fatalf("pass by %d: %v", place, err)
		}
	}
	s := g.State()
	if len(s.Table[2].Tricks) != 5 {
		t.Errorf("bomber Tricks = %v, want 5 cards", s.Table[2].Tricks)
	}
	if s.Current != 2 {
		t.Errorf("Current = %d, want 2", s.Current)
	}
}

// TestPassSkipsFinishedSeats verifies passes skip seats without cards and a
// trick won by a finished seat is still credited to it.
func TestPassSkipsFinishedSeats(t *testing.T) {
	g := runningGame(t, 0, [NumSeats][]CardID{
		{"sK"},
		{"r4", "r5"},
		{"s9", "gA"},
		{"bQ", "gQ"},
	})
	if err := g.Play(0, []CardID{"sK"}); err != nil {
		t.Fatal(err)
	}
	if len(g.state.Ranking) != 1 || g.state.Ranking[0] != 0 {
		t.Fatalf("Ranking = %v, want [0]", g.state.Ranking)
	}
	for _, place := range []int{1, 2, 3} {
		if err := g.Play(place, nil); err != nil {
			t.Fatalf("pass by %d: %v", place, err)
		}
	}
	s := g.State()
	if len(s.Table[0].Tricks) != 1 {
		t.Errorf("finished seat Tricks = %v, want [sK]", s.Table[0].Tricks)
	}
	if s.Current != 1 {
		t.Errorf("Current = %d, want 1", s.Current)
	}
}
