// Package prompt owns the single outstanding question asked to the user.
//
// A Request is either blocking, in which case the caller waits for the
// answer by pumping the event loop, or non-blocking, in which case the
// answer is handed to a one-shot AnswerFunc. At most one request exists at
// a time; asking a second question while one is pending fails with
// ErrPending and leaves the first untouched.
package prompt

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/cmdbar/internal/input/key"
)

// ErrPending is returned when a request is made while another is outstanding.
var ErrPending = errors.New("an input request is already pending")

// AnswerFunc receives the answer of a non-blocking request.
// ok is false when the request was cancelled.
type AnswerFunc func(answer string, ok bool)

// Request is a pending question.
type Request struct {
	// ID identifies the request in logs and guards stale cancellations.
	ID uuid.UUID

	// Blocking is true when the caller waits for the answer itself.
	Blocking bool

	answerFn  AnswerFunc
	choices   []rune
	shortcuts map[key.Key]string

	answer   string
	answered bool
	done     bool
}

// Answer returns the recorded answer. ok is false while the request is
// pending and after a cancellation.
func (r *Request) Answer() (answer string, ok bool) {
	return r.answer, r.answered
}

// Done returns true once the request was answered or cancelled.
func (r *Request) Done() bool {
	return r.done
}

// Choices returns the single-character answers accepted by the request.
func (r *Request) Choices() []rune {
	return slices.Clone(r.choices)
}

// Option configures a Request.
type Option func(*Request)

// WithAnswer sets the function receiving a non-blocking answer.
func WithAnswer(fn AnswerFunc) Option {
	return func(r *Request) {
		r.answerFn = fn
	}
}

// WithChoices restricts the keys that answer the request immediately.
func WithChoices(choices ...rune) Option {
	return func(r *Request) {
		r.choices = append(r.choices, choices...)
	}
}

// WithShortcuts maps keys to literal answers. Shortcuts are checked
// before choices.
func WithShortcuts(shortcuts map[key.Key]string) Option {
	return func(r *Request) {
		if r.shortcuts == nil {
			r.shortcuts = make(map[key.Key]string, len(shortcuts))
		}
		for k, v := range shortcuts {
			r.shortcuts[k] = v
		}
	}
}

// WithBlocking marks the request as blocking.
func WithBlocking() Option {
	return func(r *Request) {
		r.Blocking = true
	}
}

// Registry holds at most one pending request.
type Registry struct {
	pending *Request
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Request creates and stores a new pending request.
func (r *Registry) Request(opts ...Option) (*Request, error) {
	if r.pending != nil {
		return nil, ErrPending
	}
	req := &Request{ID: uuid.New()}
	for _, opt := range opts {
		opt(req)
	}
	r.pending = req
	return req, nil
}

// Pending returns the outstanding request, or nil.
func (r *Registry) Pending() *Request {
	return r.pending
}

// Match returns the answer selected by k, checking the choice shortcuts
// and then the choices of the pending request.
func (r *Registry) Match(k key.Key) (string, bool) {
	req := r.pending
	if req == nil {
		return "", false
	}
	if answer, ok := req.shortcuts[k]; ok {
		return answer, true
	}
	if ch, ok := k.Char(); ok && slices.Contains(req.choices, ch) {
		return string(ch), true
	}
	return "", false
}

// Deliver answers the pending request. ok is false for a cancellation.
// A blocking request only records the answer. A non-blocking request is
// cleared, together with its choices, before its AnswerFunc runs so that
// the function is invoked at most once even if it asks a new question.
// Deliver returns false when no request is pending.
func (r *Registry) Deliver(answer string, ok bool) bool {
	req := r.pending
	if req == nil {
		return false
	}
	r.pending = nil

	if !ok {
		answer = ""
	}
	req.answer, req.answered, req.done = answer, ok, true

	fn := req.answerFn
	req.answerFn = nil
	req.choices = nil
	req.shortcuts = nil

	if !req.Blocking && fn != nil {
		fn(answer, ok)
	}
	return true
}

// Cancel cancels the request with the given ID if it is still pending.
func (r *Registry) Cancel(id uuid.UUID) bool {
	if r.pending == nil || r.pending.ID != id {
		return false
	}
	return r.Deliver("", false)
}
