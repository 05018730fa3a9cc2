package supabase

import "fmt"

// ErrorKind classifies every failure an operation can produce. Callers
// branch on the kind, not on message text.
type ErrorKind string

const (
	// KindConfig means required connection credentials were absent.
	// Detected before any network call.
	KindConfig ErrorKind = "config"
	// KindTimeout is a transport timeout.
	KindTimeout ErrorKind = "timeout"
	// KindConnection is any other transport-level failure.
	KindConnection ErrorKind = "connection"
	// KindUpstream is a non-2xx response from PostgREST; status and
	// body are passed through verbatim.
	KindUpstream ErrorKind = "upstream"
	// KindInternal is the catch-all for unexpected local failures.
	KindInternal ErrorKind = "internal"
)

// Error is a tagged operation failure. Status mirrors what callers see
// in the envelope: upstream rejections carry the real HTTP status,
// synthesized kinds use a fixed one (config/internal 500, timeout 408,
// connection 503).
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

func errConfig(msg string) *Error {
	return &Error{Kind: KindConfig, Status: 500, Message: msg}
}

func errTimeout() *Error {
	return &Error{Kind: KindTimeout, Status: 408, Message: "request timeout contacting Supabase"}
}

func errConnection(err error) *Error {
	return &Error{Kind: KindConnection, Status: 503, Message: fmt.Sprintf("connection failed: %v", err)}
}

func errUpstream(status int, body string) *Error {
	return &Error{Kind: KindUpstream, Status: status, Message: body}
}

func errInternal(err error) *Error {
	return &Error{Kind: KindInternal, Status: 500, Message: fmt.Sprintf("unexpected error: %v", err)}
}
