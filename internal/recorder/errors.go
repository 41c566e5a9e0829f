package recorder

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// TimeoutError is returned when a request exceeds its deadline. The underlying
// request has been aborted.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timed out after %s", e.Op, e.Timeout)
}

// NetworkError is a transport-level failure.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response.
type HTTPError struct {
	Op      string
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.Code)
}

// ParseError is a malformed payload or one that does not match the expected schema.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CommandError is a well-formed {success:false} answer to a command.
type CommandError struct {
	Op      string
	Message string
}

func (e *CommandError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rejected by recorder", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

type ErrorKind string

const (
	KindNone    ErrorKind = ""
	KindTimeout ErrorKind = "timeout"
	KindNetwork ErrorKind = "network"
	KindHTTP    ErrorKind = "http"
	KindParse   ErrorKind = "parse"
	KindCommand ErrorKind = "command"
	KindUnknown ErrorKind = "unknown"
)

// Kind classifies err into the client error taxonomy.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		timeoutErr *TimeoutError
		networkErr *NetworkError
		httpErr    *HTTPError
		parseErr   *ParseError
		commandErr *CommandError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return KindTimeout
	case errors.As(err, &networkErr):
		return KindNetwork
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &commandErr):
		return KindCommand
	default:
		return KindUnknown
	}
}

// Describe returns a short operator-facing cause for err.
func Describe(err error) string {
	var httpErr *HTTPError
	var commandErr *CommandError

	switch Kind(err) {
	case KindNone:
		return ""
	case KindTimeout:
		return "request timed out"
	case KindNetwork:
		return "unable to reach the recorder"
	case KindHTTP:
		errors.As(err, &httpErr)
		return fmt.Sprintf("recorder answered HTTP %d", httpErr.Code)
	case KindParse:
		return "recorder sent an invalid response"
	case KindCommand:
		errors.As(err, &commandErr)
		if commandErr.Message != "" {
			return commandErr.Message
		}
		return "command rejected by recorder"
	default:
		return err.Error()
	}
}

// classifyTransportError turns an http.Client.Do error into a TimeoutError or
// NetworkError.
func classifyTransportError(op string, timeout time.Duration, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op, Timeout: timeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Op: op, Timeout: timeout}
	}
	return &NetworkError{Op: op, Err: err}
}
