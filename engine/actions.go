package engine

// Join seats a new player. Filling the fourth seat deals the first round.
func (g *Game) Join(name string, place int) error {
	if g.state.Status != StatusWaiting {
		return ErrCannotJoin
	}
	if name == "" {
		return ErrInvalidName
	}
	if place < 0 || place >= NumSeats {
		return ErrInvalidPlace
	}
	for _, p := range g.state.Table {
		if p != nil && p.Name == name {
			return ErrNameTaken
		}
	}
	if g.state.Table[place] != nil {
		return ErrPlaceTaken
	}

	p := &Player{Name: name, Place: place}
	p.resetRound()
	g.state.Table[place] = p
	g.update()

	if g.state.Seated() == NumSeats {
		g.start()
	}
	return nil
}

// Tichu records a declaration. It is accepted while the caller still holds
// cards in the exchange or running phase.
func (g *Game) Tichu(place int, t TichuType) error {
	if !g.seated(place) {
		return ErrInvalidPlace
	}
	if !t.Valid() {
		return ErrInvalidTichu
	}
	status := g.state.Status
	if (status != StatusExchange && status != StatusRunning) || !g.hasCards(place) {
		return ErrCannotTichu
	}
	g.state.Table[place].Tichu = t
	g.update()
	return nil
}

// Exchange stages three cards to pass on. Once every seat has staged, the
// cards move atomically and trick play begins with the Mah Jong holder.
func (g *Game) Exchange(place int, cards []CardID) error {
	if !g.seated(place) {
		return ErrInvalidPlace
	}
	if g.state.Status != StatusExchange {
		return ErrCannotExchange
	}
	if !AllValid(cards) {
		return ErrInvalidCard
	}
	if len(cards) != len(exchangeOffsets) {
		return ErrWrongCardCount
	}
	player := g.state.Table[place]
	if !IsSubset(cards, player.Cards) {
		return ErrNotOwned
	}

	player.Exchange = make([]CardID, len(cards))
	for i, id := range cards {
		player.Exchange[i] = id.Normalize()
	}

	for _, p := range g.state.Table {
		if len(p.Exchange) != len(exchangeOffsets) {
			g.update()
			return nil
		}
	}

	for _, p := range g.state.Table {
		p.Cards = Subtract(p.Cards, p.Exchange)
	}
	for _, p := range g.state.Table {
		for i, id := range p.Exchange {
			to := g.state.Table[(p.Place+exchangeOffsets[i])%NumSeats]
			to.Cards = append(to.Cards, id)
		}
		p.Exchange = []CardID{}
	}

	g.state.Status = StatusRunning
	g.state.Current = g.holderOf(MahJong)
	g.state.LastTrick = -1
	g.update()
	return nil
}

// Play puts cards on the stack. An empty play is a pass. Bombs may be played
// out of turn; everything else requires the turn.
func (g *Game) Play(place int, cards []CardID) error {
	if !g.seated(place) {
		return ErrInvalidPlace
	}
	if g.state.Status != StatusRunning {
		return ErrCannotPlay
	}
	if !AllValid(cards) {
		return ErrInvalidCard
	}
	player := g.state.Table[place]
	if !IsSubset(cards, player.Cards) {
		return ErrNotOwned
	}
	combination := NewCombination(cards)
	if combination.Type == TypeNone {
		return ErrNotCombination
	}
	if !combination.IsBomb() && g.state.Current != place {
		return ErrNotBomb
	}
	if !IsCompatible(combination, g.state.Stack) {
		return ErrNotCompatible
	}

	if combination.Type == TypeEmpty {
		if len(g.state.Stack) == 0 {
			return ErrCannotPassEmpty
		}
		g.pass()
		g.update()
		return nil
	}

	if !IsPlayable(combination, g.state.Stack) {
		return ErrNotHighEnough
	}

	g.state.Stack = append(g.state.Stack, combination)
	player.Cards = Subtract(player.Cards, combination.Cards)
	g.state.LastTrick = place

	if len(player.Cards) == 0 && g.finish(place) {
		return nil
	}

	if combination.IsDog() {
		g.collect(Partner(place))
	} else {
		g.state.Current = g.nextWithCards(place + 1)
	}
	g.update()
	return nil
}

// Leave vacates a seat and returns the table to waiting. Round progress is
// discarded; the match score survives unless the table empties.
func (g *Game) Leave(place int) error {
	if !g.seated(place) {
		return ErrInvalidPlace
	}
	ended := g.state.Status == StatusEnded
	g.state.Table[place] = nil
	g.state.Status = StatusWaiting
	g.state.Stack = []Combination{}
	g.state.Ranking = []int{}
	g.state.Current = -1
	g.state.LastTrick = -1
	for _, p := range g.state.Table {
		if p != nil {
			p.resetRound()
		}
	}
	if ended || g.state.Seated() == 0 {
		g.state.Score = [2]int{}
	}
	g.update()
	return nil
}

// pass moves the turn on. Reaching the seat that played the top of the stack
// hands that seat the trick.
func (g *Game) pass() {
	for step := 1; step <= NumSeats; step++ {
		seat := (g.state.Current + step) % NumSeats
		if seat == g.state.LastTrick {
			g.collect(seat)
			return
		}
		if g.hasCards(seat) {
			g.state.Current = seat
			return
		}
	}
}

// collect gives the stack to place and lets it lead, or the next seat with
// cards if place has already gone out.
func (g *Game) collect(place int) {
	p := g.state.Table[place]
	for _, c := range g.state.Stack {
		for _, id := range c.Cards {
			p.Tricks = append(p.Tricks, id.Normalize())
		}
	}
	g.state.Stack = []Combination{}
	g.state.LastTrick = -1
	g.state.Current = g.nextWithCards(place)
}
