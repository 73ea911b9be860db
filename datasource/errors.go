package datasource

import (
	"errors"
	"fmt"
)

// ErrCityNotFound is returned when the upstream API does not know the location
var ErrCityNotFound = errors.New("city not found")

// APIError is a non-200 response other than 404
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}
