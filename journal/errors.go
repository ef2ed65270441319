package journal

import "fmt"

// InvalidInputError rejects a trade or settings change before any state is
// touched.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
