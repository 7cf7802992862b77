package engine

// finish records place going out and reports whether that ended the round.
// The round ends on a double win or once three seats are out; the remaining
// seats are ranked implicitly.
func (g *Game) finish(place int) bool {
	s := &g.state
	s.Ranking = append(s.Ranking, place)

	switch len(s.Ranking) {
	case 2:
		if Team(s.Ranking[0]) != Team(s.Ranking[1]) {
			return false
		}
		g.completeRanking()
		g.endRound(true)
		return true
	case NumSeats - 1:
		g.completeRanking()
		g.endRound(false)
		return true
	}
	return false
}

// completeRanking appends the seats still holding cards, in turn order after
// the latest finisher.
func (g *Game) completeRanking() {
	s := &g.state
	latest := s.Ranking[len(s.Ranking)-1]
	for i := 1; i < NumSeats; i++ {
		seat := (latest + i) % NumSeats
		if !ranked(s.Ranking, seat) {
			s.Ranking = append(s.Ranking, seat)
		}
	}
}

func ranked(ranking []int, place int) bool {
	for _, p := range ranking {
		if p == place {
			return true
		}
	}
	return false
}

// endRound scores the finished round, then deals the next one or ends the match.
func (g *Game) endRound(doubleWin bool) {
	s := &g.state

	for i, place := range s.Ranking {
		bonus := g.rules.TichuPoints[s.Table[place].Tichu]
		if i == 0 {
			s.Score[Team(place)] += bonus
		} else {
			s.Score[Team(place)] -= bonus
		}
	}

	if doubleWin {
		s.Score[Team(s.Ranking[0])] += g.rules.DoubleWinPoints
	} else {
		if len(s.Stack) > 0 && s.LastTrick >= 0 {
			g.collect(s.LastTrick)
		}

		first := s.Table[s.Ranking[0]]
		last := s.Table[s.Ranking[NumSeats-1]]

		// The last seat's tricks go to the winner, its hand to the opponents.
		first.Tricks = append(first.Tricks, last.Tricks...)
		last.Tricks = []CardID{}
		opponent := s.Table[(last.Place+1)%NumSeats]
		for _, id := range last.Cards {
			opponent.Tricks = append(opponent.Tricks, id.Normalize())
		}
		last.Cards = []CardID{}

		for place, p := range s.Table {
			s.Score[Team(place)] += Points(p.Tricks)
		}
	}

	s.Current = -1
	s.LastTrick = -1

	if s.Score[0] >= g.rules.TargetScore || s.Score[1] >= g.rules.TargetScore {
		s.Status = StatusEnded
		g.update()
		return
	}
	g.update()
	g.start()
}
