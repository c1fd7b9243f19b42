package sink

import (
	"context"
	"errors"

	"traffic-sim-registration-api-server/internal/registration"
)

// RecordSink receives each completed registration exactly once per
// successful submission.
type RecordSink interface {
	Name() string
	Emit(ctx context.Context, rec registration.Record) error
}

// Notification is a toast payload surfaced to the user interface.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive"`
}

// Notifier delivers toasts for one form session.
type Notifier interface {
	Notify(sessionID string, n Notification)
}

// MultiNotifier delivers each toast to every member notifier.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(sessionID string, n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(sessionID, n)
		}
	}
}

// Group fans a record out to every attached sink. Nil sinks are ignored.
type Group struct {
	sinks []RecordSink
}

func NewGroup(sinks ...RecordSink) *Group {
	g := &Group{}
	for _, s := range sinks {
		if s == nil {
			continue
		}
		g.sinks = append(g.sinks, s)
	}
	return g
}

func (g *Group) Name() string { return "group" }

// Emit delivers the record to every member. All members are attempted even
// if an earlier one fails; the errors are joined.
func (g *Group) Emit(ctx context.Context, rec registration.Record) error {
	var errs []error
	for _, s := range g.sinks {
		if err := s.Emit(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
