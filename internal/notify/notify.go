// Package notify delivers verdict-transition alerts. The report format was
// written for GitHub issues and Slack, so those are the two sinks.
package notify

import "context"

// Notifier delivers one titled message. Sends are best-effort; a failing
// sink never blocks the probe loop.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans one message out to every configured sink. Nil entries are
// skipped, so disabled notifiers can be appended unconditionally.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, title, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
