package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/outbound-tracker/internal/service/analytics"
)

var reportViews = []string{"today", "pipeline", "performance", "matrices"}

func reportCmd(e *env) *cobra.Command {
	var (
		rangeFlag string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:       "report <today|pipeline|performance|matrices>",
		Short:     "Print a derived view",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: reportViews,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := analytics.ParseTimeRange(rangeFlag)
			if err != nil {
				return describeError(err)
			}
			if err := e.open(cmd.Context()); err != nil {
				return err
			}

			view, err := buildReport(cmd, e.svc.Analytics, args[0], rng)
			if err != nil {
				return describeError(err)
			}
			if asJSON {
				return writeJSON(e.out, view)
			}
			renderReport(e.out, view)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rangeFlag, "range", "r", string(analytics.DefaultTimeRange), "performance range: 7d, 14d, 30d, all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")
	return cmd
}

func buildReport(cmd *cobra.Command, svc *analytics.Service, name string, rng analytics.TimeRange) (any, error) {
	ctx := cmd.Context()
	switch name {
	case "today":
		return svc.Today(ctx, svc.Now())
	case "pipeline":
		return svc.Pipeline(ctx)
	case "performance":
		return svc.Performance(ctx, rng)
	case "matrices":
		return svc.Matrices(ctx)
	}
	return nil, fmt.Errorf("unknown view %q", name)
}

func renderReport(w io.Writer, view any) {
	switch v := view.(type) {
	case analytics.TodayView:
		renderToday(w, v)
	case analytics.PipelineView:
		renderPipeline(w, v)
	case analytics.PerformanceView:
		renderPerformance(w, v)
	case analytics.MatricesView:
		renderMatrices(w, v)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
