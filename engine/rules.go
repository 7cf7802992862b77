package engine

// Rules holds the scoring parameters of a match.
type Rules struct {
	TargetScore     int               // a team reaching this ends the match
	DoubleWinPoints int               // flat award when partners finish 1st and 2nd
	TichuPoints     map[TichuType]int // bonus for a fulfilled call, penalty otherwise
}

// DefaultRules returns the standard Tichu scoring.
func DefaultRules() Rules {
	return Rules{
		TargetScore:     1000,
		DoubleWinPoints: 200,
		TichuPoints: map[TichuType]int{
			TichuUnknown: 0,
			TichuNone:    0,
			TichuNormal:  100,
			TichuGrand:   200,
		},
	}
}

// exchangeOffsets maps staged card i to the seat place+exchangeOffsets[i]:
// next seat, partner, previous seat.
var exchangeOffsets = [3]int{1, 2, 3}
