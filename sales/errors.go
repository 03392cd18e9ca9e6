package sales

import (
	"errors"
	"fmt"
)

// Not-found sentinels. Callers map these to 404s.
var ErrSaleNotFound = errors.New("sale not found")
var ErrConversationNotFound = errors.New("conversation not found")

// ValidationError is a caller mistake: bad input, missing reason, broken
// linkage. Never retried, nothing is applied.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
