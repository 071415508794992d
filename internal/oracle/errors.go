package oracle

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when the oracle's response cannot be
// parsed or is missing required fields.
var ErrMalformedResponse = errors.New("malformed oracle response")

// Error represents an HTTP error from the oracle API.
type Error struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		if e.RequestID != "" {
			return fmt.Sprintf("oracle error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("oracle error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("oracle error %d", e.StatusCode)
}
