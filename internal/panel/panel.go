// Package panel implements the form state of the four feature panels.
//
// A panel is idle until a submission passes its preconditions, pending while
// the request is in flight, and settled once a result or a notification is
// shown. Submissions are split into Begin, Do and Complete so that a UI can
// run Do on another goroutine; Complete discards any outcome that is not for
// the latest submission.
package panel

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/kisan/internal/assistant"
)

type State int

const (
	StateIdle State = iota
	StatePending
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSettled:
		return "settled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

const (
	errorDuration = 3 * time.Second
	infoDuration  = 5 * time.Second
)

// Notification is a transient message shown to the user.
type Notification struct {
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Variant     Variant       `json:"variant" yaml:"variant"`
	Duration    time.Duration `json:"-" yaml:"-"`
}

func destructive(title, description string) Notification {
	return Notification{
		Title:       title,
		Description: description,
		Variant:     VariantDestructive,
		Duration:    errorDuration,
	}
}

// ValidationError is returned when a submission fails its preconditions.
// No request is made.
type ValidationError struct {
	Notification Notification
}

func (e *ValidationError) Error() string {
	return e.Notification.Title + ": " + e.Notification.Description
}

// errorNotification prefers the server-supplied detail over the panel's fallback.
func errorNotification(err error, fallback string) Notification {
	if detail, ok := assistant.DetailOf(err); ok {
		return destructive("Error", detail)
	}
	return destructive("Error", fallback)
}

// Request is a submission that has passed validation.
type Request[T any] struct {
	Token uint64
	call  func(ctx context.Context) (T, error)
}

// Do performs the network call. It touches no panel state.
func (r Request[T]) Do(ctx context.Context) Outcome[T] {
	value, err := r.call(ctx)
	return Outcome[T]{Token: r.Token, Value: value, Err: err}
}

// Outcome is the result of a Request, handed back to the panel's Complete.
type Outcome[T any] struct {
	Token uint64
	Value T
	Err   error
}

// tracker issues monotonically increasing tokens per panel.
type tracker struct {
	latest   uint64
	inflight bool
}

func (t *tracker) issue() uint64 {
	t.latest++
	t.inflight = true
	return t.latest
}

// accept reports whether token belongs to the request still awaited.
func (t *tracker) accept(token uint64) bool {
	if !t.inflight || token != t.latest {
		return false
	}
	t.inflight = false
	return true
}

// invalidate drops whatever request is in flight.
func (t *tracker) invalidate() {
	t.latest++
	t.inflight = false
}

// base holds what every panel shares: the pending request and the notification.
type base struct {
	requests     tracker
	notification *Notification
}

func (b *base) Pending() bool {
	return b.requests.inflight
}

func (b *base) Notification() (Notification, bool) {
	if b.notification == nil {
		return Notification{}, false
	}
	return *b.notification, true
}

// DismissNotification clears the notification, e.g. when its toast expires.
func (b *base) DismissNotification() {
	b.notification = nil
}

func (b *base) notify(n Notification) {
	b.notification = &n
}

func (b *base) reject(n Notification) error {
	b.notify(n)
	return &ValidationError{Notification: n}
}

func (b *base) begin() uint64 {
	b.notification = nil
	return b.requests.issue()
}

func (b *base) state(hasResult bool) State {
	switch {
	case b.requests.inflight:
		return StatePending
	case hasResult || b.notification != nil:
		return StateSettled
	default:
		return StateIdle
	}
}

// submit runs a request synchronously and completes it.
func submit[T any](ctx context.Context, req Request[T], complete func(Outcome[T]) bool) error {
	outcome := req.Do(ctx)
	complete(outcome)
	return outcome.Err
}
