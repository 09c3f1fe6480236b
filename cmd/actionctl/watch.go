package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/outbound-tracker/internal/service/analytics"
	"github.com/heartmarshall/outbound-tracker/internal/watch"
)

func watchCmd(e *env) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute today's counters on an interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = e.cfg.Tracker.PollInterval
			}

			svc := e.svc.Analytics
			r, err := watch.New(e.log, interval,
				func(ctx context.Context) (analytics.TodayView, error) {
					return svc.Today(ctx, svc.Now())
				},
				func(v analytics.TodayView) {
					renderTodayLine(e.out, time.Now(), v)
				},
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(e.out, "watching every %s (ctrl-c to stop)\n", interval)
			return r.Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", 5*time.Second, "poll interval (default tracker.poll_interval)")
	return cmd
}
