// Package notifier renders course events as text and delivers them.
package notifier

import "context"

// Notifier delivers one text message to a channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, text string) error
}
