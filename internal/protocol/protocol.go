// Package protocol fetches resources by URI, dispatching on the URI scheme.
// Failures are carried as an error kind on the Response rather than thrown,
// so callers that feed the rendering core never see a fault path.
package protocol

import (
	"strings"

	"github.com/kestrelweb/kestrel/internal/uri"
)

// Error classifies the outcome of a fetch.
type Error int

const (
	// ErrorOK means the handler produced a usable response.
	ErrorOK Error = iota
	// ErrorUnresolved means the target could not be reached or found.
	ErrorUnresolved
	// ErrorUnhandled means no handler is registered for the URI's scheme.
	ErrorUnhandled
	// ErrorInvalidResponse means the handler reached the target but could
	// not make sense of what came back.
	ErrorInvalidResponse
)

func (e Error) String() string {
	switch e {
	case ErrorOK:
		return "ok"
	case ErrorUnresolved:
		return "unresolved"
	case ErrorUnhandled:
		return "unhandled"
	case ErrorInvalidResponse:
		return "invalid response"
	default:
		return "unknown"
	}
}

// StatusLine mirrors the first line of an HTTP-style response.
type StatusLine struct {
	Version string
	Code    int
	Reason  string
}

// Response is the uniform result of any fetch, whatever the scheme.
type Response struct {
	Err     Error
	Status  StatusLine
	Headers Headers
	Body    string
}

// Handler fetches one URI. Implementations classify their own failures into
// the Error kinds; they do not return Go errors.
type Handler interface {
	Handle(u uri.URI) Response
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(uri.URI) Response

func (f HandlerFunc) Handle(u uri.URI) Response { return f(u) }

// MultiHandler routes fetches to per-scheme handlers.
type MultiHandler struct {
	handlers map[string]Handler
}

func NewMultiHandler() *MultiHandler {
	return &MultiHandler{handlers: make(map[string]Handler)}
}

// Add registers a handler for a scheme, replacing any previous registration.
// Schemes compare case-insensitively.
func (m *MultiHandler) Add(scheme string, h Handler) {
	m.handlers[strings.ToLower(scheme)] = h
}

// Handle dispatches on the URI's scheme. An unregistered scheme yields
// ErrorUnhandled without invoking any handler.
func (m *MultiHandler) Handle(u uri.URI) Response {
	h, ok := m.handlers[strings.ToLower(u.Scheme)]
	if !ok {
		return Response{Err: ErrorUnhandled}
	}
	return h.Handle(u)
}
