package sentiment

import (
	"errors"
	"fmt"
)

// ErrSourceExhausted signals that the data source has no further items for
// a tag. The aggregator finalizes the tag with whatever was accumulated.
var ErrSourceExhausted = errors.New("source exhausted")

// SetupError indicates the credential or session exchange with the data
// provider failed. It is fatal for the whole run: no tag is attempted.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("twitter setup failed: %v", e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// IsSetupError reports whether err is a SetupError
func IsSetupError(err error) bool {
	var setupErr *SetupError
	return errors.As(err, &setupErr)
}
