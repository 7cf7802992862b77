package engine

// Color tags are the first character of a card code.
const (
	ColorSpades  byte = 's'
	ColorRed     byte = 'r'
	ColorGreen   byte = 'g'
	ColorBlue    byte = 'b'
	ColorSpecial byte = 'x'
)

// Colors lists the four suited colors in display order.
var Colors = [4]byte{ColorSpades, ColorRed, ColorGreen, ColorBlue}

// Symbols lists the standard rank symbols from lowest to highest.
var Symbols = [13]byte{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}

// Special card identities.
const (
	MahJong CardID = "x1"
	Dragon  CardID = "xD"
	Phoenix CardID = "xP"
	Dog     CardID = "xH"
)

// Rank values. The Mah Jong is 0, the standard ranks run 1 (two) to 13 (ace)
// and the Dragon sits above them. Phoenix and Dog carry NoValue.
const (
	ValueMahJong = 0
	ValueTwo     = 1
	ValueAce     = 13
	ValueDragon  = 14
	NoValue      = -1
)

// numRanks is the length of the rank-count scan: Mah Jong plus 2..A.
const numRanks = 14

// NumSeats is the fixed table size.
const NumSeats = 4

// Status is the overall phase of a table.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusAnnouncing Status = "announcing" // declared for call timing; never entered
	StatusExchange   Status = "exchange"
	StatusRunning    Status = "running"
	StatusEnded      Status = "ended"
)

// TichuType is a player's declaration for the round.
type TichuType string

const (
	TichuUnknown TichuType = "unknown"
	TichuNone    TichuType = "none"
	TichuNormal  TichuType = "normal"
	TichuGrand   TichuType = "grand"
)

// Valid reports whether t may be declared through the action API.
func (t TichuType) Valid() bool {
	return t == TichuNone || t == TichuNormal || t == TichuGrand
}

// CombinationType identifies the shape of a set of cards.
type CombinationType string

const (
	TypeEmpty        CombinationType = "empty"
	TypeSingle       CombinationType = "single"
	TypePair         CombinationType = "pair"
	TypeTriple       CombinationType = "triple"
	TypeFullHouse    CombinationType = "full_house"
	TypeStair        CombinationType = "stair"
	TypeBomb         CombinationType = "bomb"
	TypeStraightBomb CombinationType = "straight_bomb"
	TypeStraight     CombinationType = "straight"
	TypeNone         CombinationType = "none"
)
