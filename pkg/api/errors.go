package api

import "fmt"

// NetworkError is returned when a request could not be completed at the transport level.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %s", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a response body is not the expected JSON.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: error decoding response: %s", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the service answers a list or create call with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d", e.Op, e.StatusCode)
}
