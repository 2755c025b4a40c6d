package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("service unavailable")
	ErrNotFound          = errors.New("user not found")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMalformedResponse = errors.New("malformed response")
)

// RemoteCallError describes one failed call to the remote user service.
type RemoteCallError struct {
	Op        string
	Method    string
	URL       string
	Status    int
	RequestID string
	Err       error
}

func (e *RemoteCallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s %s: status %d: %v", e.Op, e.Method, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
