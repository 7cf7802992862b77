package engine

// top returns the most recent play on the stack.
func top(stack []Combination) (Combination, bool) {
	if len(stack) == 0 {
		return Combination{}, false
	}
	return stack[len(stack)-1], true
}

// IsCompatible reports whether c has a shape that may be compared against the
// top of stack, independent of rank.
func IsCompatible(c Combination, stack []Combination) bool {
	last, ok := top(stack)
	if !ok || c.Type == TypeEmpty {
		return true
	}
	if c.Type == last.Type && c.Len() == last.Len() {
		return true
	}
	if c.IsBomb() && last.Type != TypeStraightBomb {
		return true
	}
	return c.Type == TypeStraightBomb && last.Type == TypeStraightBomb && c.Len() >= last.Len()
}

// IsPlayable reports whether c ranks strictly above the top of stack.
// Anything opens an empty stack, the Dog included.
func IsPlayable(c Combination, stack []Combination) bool {
	last, ok := top(stack)
	if !ok {
		return true
	}

	switch {
	case c.Type == TypeStraightBomb && last.Type == TypeStraightBomb:
		if c.Len() != last.Len() {
			return c.Len() > last.Len()
		}
		return c.Value > last.Value
	case c.Type == TypeStraightBomb:
		return true
	case last.Type == TypeStraightBomb:
		return false
	case c.Type == TypeBomb && last.Type != TypeBomb:
		return true
	case last.Type == TypeBomb && c.Type != TypeBomb:
		return false
	case c.Type != last.Type || c.Len() != last.Len():
		return false
	}

	if c.Type == TypeSingle && last.Type == TypeSingle {
		if c.ContainsPhoenix() {
			return last.Cards[0] != Dragon
		}
		if last.ContainsPhoenix() {
			return c.Value > phoenixFloor(stack)
		}
	}

	return c.Value > last.Value
}

// phoenixFloor is the rank a Phoenix single on top of stack stands for: the
// single beneath it, or when it led the trick, the rank it was played as
// (the rank of a two for a plain Phoenix).
func phoenixFloor(stack []Combination) int {
	if len(stack) >= 2 {
		return stack[len(stack)-2].Value
	}
	led := stack[0].Cards[0]
	if led == Phoenix {
		return ValueTwo
	}
	return symbolValue(led[1])
}
