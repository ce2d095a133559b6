package ledger

import (
	"errors"
	"fmt"
)

// ErrInsufficientStock is returned when an exit movement would drive the item's
// quantity negative. No partial exits are applied.
var ErrInsufficientStock = errors.New("quantity exceeds current stock")

// ErrInconsistentState signals storage corruption: the item store and the
// ledger disagree in a way a single transaction should have made impossible.
var ErrInconsistentState = errors.New("item store and ledger are inconsistent")

// ValidationError marks malformed or out-of-range caller input. Both stores are
// left untouched when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
