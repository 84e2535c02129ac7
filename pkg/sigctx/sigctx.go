// Package sigctx provides contexts canceled by termination signals.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Signals stop the service gracefully.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

// NotifyContext returns a copy of parent that is canceled on the first
// of [Signals] or when the returned stop function is called.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, Signals...)
}
