package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleNotifier prints each message on its own line
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out, stdout when nil
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out}
}

// Name returns the channel name
func (cn *ConsoleNotifier) Name() string {
	return consoleNotifierName
}

// Notify writes text followed by a newline
func (cn *ConsoleNotifier) Notify(_ context.Context, text string) error {
	cn.mu.Lock()
	defer cn.mu.Unlock()
	_, err := fmt.Fprintln(cn.out, text)
	return err
}
