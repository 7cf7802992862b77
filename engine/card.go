package engine

import (
	"sort"
	"strings"
)

// CardID is the two-character card code: a color tag followed by a rank symbol.
type CardID string

// Card holds the attributes derived from a CardID.
type Card struct {
	ID        CardID
	Value     int  // rank value; NoValue for Phoenix and Dog
	Sort      int  // display key, see Compare
	Points    int  // scoring value
	IsSpecial bool // Dragon or Dog
	IsPhoenix bool // the Phoenix or one of its stand-ins
}

var deck, catalog = buildCatalog()

// buildCatalog returns the canonical deck and the attributes of every valid
// identity, including the Phoenix stand-ins that are never dealt.
func buildCatalog() ([]CardID, map[CardID]Card) {
	deck := []CardID{MahJong, Dragon, Phoenix, Dog}
	for _, color := range Colors {
		for _, symbol := range Symbols {
			deck = append(deck, CardID([]byte{color, symbol}))
		}
	}
	catalog := make(map[CardID]Card, len(deck)+len(Symbols))
	for _, id := range deck {
		catalog[id] = describe(id)
	}
	// "x5" is the Phoenix played as a five.
	for _, symbol := range Symbols {
		id := CardID([]byte{ColorSpecial, symbol})
		catalog[id] = describe(id)
	}
	return deck, catalog
}

func symbolValue(symbol byte) int {
	switch symbol {
	case '1':
		return ValueMahJong
	case 'D':
		return ValueDragon
	case 'H', 'P':
		return NoValue
	}
	for i, s := range Symbols {
		if s == symbol {
			return i + 1
		}
	}
	return NoValue
}

func describe(id CardID) Card {
	color, symbol := id[0], id[1]
	isSpecial := color == ColorSpecial && (symbol == 'H' || symbol == 'D')
	isPhoenix := color == ColorSpecial && !isSpecial && symbol != '1'

	points := 0
	switch {
	case isPhoenix:
		points = -25
	case symbol == 'T', symbol == 'K':
		points = 10
	case symbol == 'D':
		points = 25
	}

	return Card{
		ID:        id,
		Value:     symbolValue(symbol),
		Sort:      sortKey(id),
		Points:    points,
		IsSpecial: isSpecial,
		IsPhoenix: isPhoenix,
	}
}

func sortKey(id CardID) int {
	switch id {
	case Dragon:
		return 68
	case Phoenix:
		return 67
	case Dog:
		return 66
	case MahJong:
		return 65
	}
	colorIndex := len(Colors)
	for i, c := range Colors {
		if c == id[0] {
			colorIndex = i
		}
	}
	return (ValueAce-symbolValue(id[1]))*5 + colorIndex
}

// Deck returns a fresh copy of the 56 canonical card identities.
func Deck() []CardID {
	out := make([]CardID, len(deck))
	copy(out, deck)
	return out
}

// Get returns the derived attributes of id.
func Get(id CardID) (Card, error) {
	c, ok := catalog[id]
	if !ok {
		return Card{}, ErrInvalidCard
	}
	return c, nil
}

// lookup is Get for identities already validated.
func lookup(id CardID) Card {
	return catalog[id]
}

// ParseCardID normalizes client casing: "SA" and "sa" both become "sA".
func ParseCardID(s string) CardID {
	if len(s) != 2 {
		return CardID(s)
	}
	return CardID(strings.ToLower(s[:1]) + strings.ToUpper(s[1:]))
}

// IsValid reports whether id is a canonical identity or a Phoenix stand-in.
func (id CardID) IsValid() bool {
	_, ok := catalog[id]
	return ok
}

// Normalize collapses every Phoenix representation onto Phoenix.
func (id CardID) Normalize() CardID {
	if lookup(id).IsPhoenix {
		return Phoenix
	}
	return id
}

// Equal compares identities after normalization.
func (id CardID) Equal(other CardID) bool {
	return id.Normalize() == other.Normalize()
}

func (id CardID) color() byte { return id[0] }

// AllValid reports whether every id is valid.
func AllValid(ids []CardID) bool {
	for _, id := range ids {
		if !id.IsValid() {
			return false
		}
	}
	return true
}

// Compare orders cards for hand display. Aces come first, then descending
// ranks with colors in Colors order, then Mah Jong, Dog, Phoenix and Dragon.
func Compare(a, b CardID) int {
	return lookup(a).Sort - lookup(b).Sort
}

// SortCards sorts ids in place by Compare.
func SortCards(ids []CardID) {
	sort.SliceStable(ids, func(i, j int) bool { return Compare(ids[i], ids[j]) < 0 })
}

// Points sums the point values of ids.
func Points(ids []CardID) int {
	total := 0
	for _, id := range ids {
		total += lookup(id).Points
	}
	return total
}

// IndexOf returns the position of the first card in ids equal to id, or -1.
func IndexOf(id CardID, ids []CardID) int {
	for i, other := range ids {
		if id.Equal(other) {
			return i
		}
	}
	return -1
}

// Subtract returns a with one matching instance of every card in b removed.
func Subtract(a, b []CardID) []CardID {
	out := make([]CardID, len(a))
	copy(out, a)
	for _, id := range b {
		if i := IndexOf(id, out); i != -1 {
			out = append(out[:i], out[i+1:]...)
		}
	}
	return out
}

// IsSubset reports whether every card in subset matches a distinct card in set.
func IsSubset(subset, set []CardID) bool {
	remaining := make([]CardID, len(set))
	copy(remaining, set)
	for _, id := range subset {
		i := IndexOf(id, remaining)
		if i == -1 {
			return false
		}
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return true
}
