package lookup

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when the city name is blank
var ErrEmptyQuery = errors.New("empty city name")

// NotFoundError is the single failure class of a search. DNS failures, 404s,
// timeouts and malformed responses all end up here.
type NotFoundError struct {
	City string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("city %q not found: %v", e.City, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
