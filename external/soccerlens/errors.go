package soccerlens

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// Failure taxonomy. Every error leaving this package is marked with exactly
// one of these sentinels so callers can branch with errors.Is.
var (
	// ErrServer: the backend responded with a non-2xx status.
	ErrServer = crerr.New("soccerlens: server error")
	// ErrNetwork: the request never completed (connect failure, timeout,
	// circuit open).
	ErrNetwork = crerr.New("soccerlens: network error")
	// ErrClient: the request could not even be constructed.
	ErrClient = crerr.New("soccerlens: client error")
	// ErrFormat: the response arrived but its shape is not one we know.
	ErrFormat = crerr.New("soccerlens: format error")
)

// ServerError carries the HTTP status and any server-supplied message.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend status=%d", e.Status)
	}
	return fmt.Sprintf("backend status=%d message=%q", e.Status, e.Message)
}

func newServerError(status int, message string) error {
	return crerr.Mark(&ServerError{Status: status, Message: message}, ErrServer)
}

// StatusOf extracts the HTTP status from a server error.
func StatusOf(err error) (int, bool) {
	var serverErr *ServerError
	if crerr.As(err, &serverErr) {
		return serverErr.Status, true
	}
	return 0, false
}

// UserMessage maps a transport failure to the human-readable text shown in a
// transient alert. Each failure class gets a distinct message.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case crerr.Is(err, ErrServer):
		var serverErr *ServerError
		if crerr.As(err, &serverErr) && serverErr.Message != "" {
			return fmt.Sprintf("The server rejected the request (HTTP %d): %s", serverErr.Status, serverErr.Message)
		}
		if serverErr != nil {
			return fmt.Sprintf("The server rejected the request (HTTP %d).", serverErr.Status)
		}
		return "The server rejected the request."
	case crerr.Is(err, ErrNetwork):
		return "Could not reach the SoccerLens service. Check your connection and try again."
	case crerr.Is(err, ErrFormat):
		return "The server returned data in an unexpected format."
	case crerr.Is(err, ErrClient):
		return "The request could not be prepared. Please report this issue."
	default:
		return "Something went wrong. Please try again."
	}
}
