package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionInvalid is matched (via errors.Is) by every 401 response. The
// application reacts to it by dropping the browser session.
var ErrSessionInvalid = errors.New("session invalid")

// Kind classifies a failed API call.
type Kind int

const (
	// KindSetup means the request could not be built or encoded.
	KindSetup Kind = iota
	// KindNoResponse means no HTTP response was received (network, timeout).
	KindNoResponse
	// KindUnauthorized is a 401.
	KindUnauthorized
	// KindForbidden is a 403.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindBadRequest is any other 4xx. Message carries the server's message.
	KindBadRequest
	// KindServer is any 5xx.
	KindServer
)

var kindNames = map[Kind]string{
	KindSetup:        "setup",
	KindNoResponse:   "no_response",
	KindUnauthorized: "unauthorized",
	KindForbidden:    "forbidden",
	KindNotFound:     "not_found",
	KindBadRequest:   "bad_request",
	KindServer:       "server",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every Client call that fails.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Method  string
	Path    string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSessionInvalid) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrSessionInvalid && e.Kind == KindUnauthorized
}

// KindOf returns the Kind of err, and false when err is not an *Error.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsNoResponse reports whether err is a transport failure with no response.
func IsNoResponse(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNoResponse
}

// kindForStatus maps a non-2xx status to its Kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= http.StatusInternalServerError:
		return KindServer
	default:
		return KindBadRequest
	}
}

// statusError builds the Error for a non-2xx response. The API reports
// validation failures as {"message": "..."}; anything else leaves Message empty.
func statusError(method, path string, status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &Error{
		Kind:    kindForStatus(status),
		Status:  status,
		Message: payload.Message,
		Method:  method,
		Path:    path,
	}
}
