package collection

import (
	"errors"
	"fmt"
)

// FetchError reports that loading the remote collection failed. The local
// collection is left as it was.
type FetchError struct {
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch posts: %v", e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// IsFetchError checks if err is, or wraps, a FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}
