package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wifiportal/client"
)

// Polling intervals for watch mode, matching how often each dashboard
// refreshes: admin views poll every 10s, the tenant view every 30s.
const (
	adminPollInterval  = 10 * time.Second
	tenantPollInterval = 30 * time.Second
)

// watchList re-renders a list on every successful refresh until the
// context is cancelled or an interrupt arrives. A failed refresh is
// reported on stderr and the last rendered state stands.
func watchList[T any](ctx context.Context, out io.Writer, interval time.Duration, refresh func(context.Context) (T, error), render func(io.Writer, T)) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller := &client.Poller[T]{
		Interval: interval,
		Refresh:  refresh,
		OnUpdate: func(v T) {
			fmt.Fprintf(out, "\n%s\n", time.Now().Format(time.TimeOnly))
			render(out, v)
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "refresh failed: %v\n", err)
		},
	}

	poller.Run(ctx)
}
