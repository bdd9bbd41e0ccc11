package main

import (
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"blogicum/internal/notifications"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Blog event stream",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Print post and comment events as JSON lines until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := connect(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.rdb == nil {
				return errors.New("redis is not reachable; events are unavailable")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if err := notifications.NewNotifier(rt.rdb).Subscribe(ctx, func(ev notifications.Event) {
				_ = enc.Encode(ev)
			}); err != nil {
				return err
			}
			<-ctx.Done()
			return nil
		},
	})

	return cmd
}
