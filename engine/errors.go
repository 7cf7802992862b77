package engine

// RuleError is a rejected action. Its text is the failure code sent to the caller.
type RuleError string

func (e RuleError) Error() string { return string(e) }

// ResultOK is the success code reported for accepted actions.
const ResultOK = "OK"

const (
	ErrCannotJoin      RuleError = "cannot join"
	ErrInvalidName     RuleError = "invalid name"
	ErrNameTaken       RuleError = "name taken"
	ErrPlaceTaken      RuleError = "place taken"
	ErrInvalidPlace    RuleError = "invalid place"
	ErrInvalidTichu    RuleError = "invalid tichu"
	ErrCannotTichu     RuleError = "cannot call tichu"
	ErrCannotExchange  RuleError = "cannot exchange currently"
	ErrInvalidCard     RuleError = "invalid card(s)"
	ErrWrongCardCount  RuleError = "wrong number of cards"
	ErrNotOwned        RuleError = "do not have cards"
	ErrNotCombination  RuleError = "not a playable combination"
	ErrNotBomb         RuleError = "not a bomb"
	ErrNotCompatible   RuleError = "not compatible"
	ErrNotHighEnough   RuleError = "not high enough"
	ErrCannotPlay      RuleError = "cannot play currently"
	ErrCannotPassEmpty RuleError = "cannot pass on empty stack"
)

// Result maps an action outcome to its wire code.
func Result(err error) string {
	if err == nil {
		return ResultOK
	}
	return err.Error()
}
