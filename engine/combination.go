package engine

// Combination is a classified set of cards. Type and Value depend only on the
// card multiset and never change after construction.
type Combination struct {
	Cards []CardID        `json:"cards"`
	Type  CombinationType `json:"type"`
	Value int             `json:"value"`
	count [numRanks]int
}

// NewCombination classifies cards. Invalid identities yield TypeNone.
func NewCombination(cards []CardID) Combination {
	c := Combination{Cards: make([]CardID, len(cards))}
	copy(c.Cards, cards)
	if !AllValid(cards) {
		c.Type, c.Value = TypeNone, NoValue
		return c
	}
	c.count = rankCounts(cards)
	c.Type = c.classify()
	c.Value = c.value()
	return c
}

// rankCounts tallies the Mah Jong (index 0) and ranks 2..A (1..13).
// Dragon, Dog and the plain Phoenix are not counted; stand-ins count as their rank.
func rankCounts(cards []CardID) [numRanks]int {
	var counts [numRanks]int
	for _, id := range cards {
		v := lookup(id).Value
		if v >= ValueMahJong && v <= ValueAce {
			counts[v]++
		}
	}
	return counts
}

// classify runs the shape predicates in precedence order.
func (c *Combination) classify() CombinationType {
	n := len(c.Cards)
	switch n {
	case 0:
		return TypeEmpty
	case 1:
		return TypeSingle
	}

	first, second := c.topCounts()
	switch {
	case n == 2 && first == 2:
		return TypePair
	case n == 3 && first == 3:
		return TypeTriple
	case n == 4 && first == 4 && !c.ContainsPhoenix():
		return TypeBomb
	case n == 5 && first == 3 && second == 2:
		return TypeFullHouse
	}

	if c.ContainsSpecial() {
		return TypeNone
	}
	if _, ok := run(c.count, 2, 2); ok {
		return TypeStair
	}
	if _, ok := run(c.count, 1, 5); ok {
		if c.isSameColor() {
			return TypeStraightBomb
		}
		return TypeStraight
	}
	return TypeNone
}

func (c *Combination) value() int {
	switch c.Type {
	case TypeSingle:
		if c.ContainsPhoenix() {
			return NoValue
		}
		return lookup(c.Cards[0]).Value
	case TypePair, TypeTriple, TypeBomb:
		return indexOfCount(c.count, len(c.Cards))
	case TypeFullHouse:
		return indexOfCount(c.count, 3)
	case TypeStair:
		return indexOfCount(c.count, 2)
	case TypeStraight, TypeStraightBomb:
		return indexOfCount(c.count, 1)
	}
	return NoValue
}

// run reports whether every nonzero count equals want, the nonzero entries are
// contiguous, and there are at least minLen of them. It returns the lowest rank.
func run(counts [numRanks]int, want, minLen int) (int, bool) {
	lowest, length := -1, 0
	for i, n := range counts {
		if n == 0 {
			continue
		}
		if n != want {
			return -1, false
		}
		if lowest == -1 {
			lowest = i
		} else if i != lowest+length {
			return -1, false
		}
		length++
	}
	return lowest, length >= minLen
}

func indexOfCount(counts [numRanks]int, want int) int {
	for i, n := range counts {
		if n == want {
			return i
		}
	}
	return NoValue
}

func (c *Combination) topCounts() (first, second int) {
	for _, n := range c.count {
		switch {
		case n > first:
			first, second = n, first
		case n > second:
			second = n
		}
	}
	return first, second
}

// Len is the number of cards in the combination.
func (c Combination) Len() int { return len(c.Cards) }

// IsBomb reports whether the combination may interrupt turn order.
func (c Combination) IsBomb() bool {
	return c.Type == TypeBomb || c.Type == TypeStraightBomb
}

// ContainsSpecial reports whether the Dragon or the Dog is present.
func (c Combination) ContainsSpecial() bool {
	for _, id := range c.Cards {
		if lookup(id).IsSpecial {
			return true
		}
	}
	return false
}

// ContainsPhoenix reports whether the Phoenix, in any representation, is present.
func (c Combination) ContainsPhoenix() bool {
	for _, id := range c.Cards {
		if lookup(id).IsPhoenix {
			return true
		}
	}
	return false
}

// IsDog reports whether the combination is the Dog played alone.
func (c Combination) IsDog() bool {
	return c.Type == TypeSingle && c.Cards[0] == Dog
}

func (c Combination) isSameColor() bool {
	color := c.Cards[0].color()
	if color == ColorSpecial {
		return false
	}
	for _, id := range c.Cards[1:] {
		if id.color() != color {
			return false
		}
	}
	return true
}
