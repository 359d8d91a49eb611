package gateway

import (
	"errors"
	"fmt"
)

// TransportError covers network failures, timeouts and non-2xx responses.
// Status is 0 when no response was received.
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("transport: %d %s", e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("transport: %s: %v", e.Message, e.Err)
	}
	return "transport: " + e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	ok := errors.As(err, &te)
	return te, ok
}

func IsTimeout(err error) bool {
	te, ok := AsTransportError(err)
	return ok && te.Message == "timeout"
}
