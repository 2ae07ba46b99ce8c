package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnreachable marks transport-level failures where no server response
// was received. Match with errors.Is.
var ErrUnreachable = errors.New("server unreachable")

// StatusError is a request the server received and rejected with a non-2xx
// status. Detail carries the server's human-readable explanation.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Detail)
}

// TransportError wraps a failure to reach the server at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "server unreachable: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) Is(target error) bool {
	return target == ErrUnreachable
}

// DecodeError is a 2xx response whose body could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "malformed server response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// detailEnvelope is the server's standard error body.
type detailEnvelope struct {
	Detail string `json:"detail"`
}

func newStatusError(status int, body []byte) *StatusError {
	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Detail != "" {
		return &StatusError{Status: status, Detail: env.Detail}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return &StatusError{Status: status, Detail: msg}
	}
	return &StatusError{Status: status, Detail: http.StatusText(status)}
}

// IsStatus reports whether err is a rejection with the given status code.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// IsUnauthorized reports whether the server rejected the credentials.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// Message converts any gateway error into a line suitable for end users.
func Message(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	if errors.Is(err, ErrUnreachable) {
		return "could not reach the server, check your connection and base URL"
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return "the server returned an unexpected response"
	}
	return err.Error()
}
