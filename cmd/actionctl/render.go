package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
	"github.com/heartmarshall/outbound-tracker/internal/service/analytics"
)

var (
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	red     = color.New(color.FgRed)
	cyan    = color.New(color.FgCyan)
	faint   = color.New(color.Faint)
	heading = color.New(color.Bold)
)

func okMark() string { return green.Sprint("✓") }

// describeError flattens a validation error into one line per field.
func describeError(err error) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	lines := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		lines = append(lines, fmt.Sprintf("  %s: %s", fe.Field, fe.Message))
	}
	return fmt.Errorf("invalid input:\n%s", strings.Join(lines, "\n"))
}

func statusColor(s domain.Status) *color.Color {
	switch s {
	case domain.StatusCompleted:
		return green
	case domain.StatusNeedsFollowUp:
		return yellow
	}
	return faint
}

func stageColor(s analytics.Stage) *color.Color {
	switch s {
	case analytics.StageClosing:
		return green
	case analytics.StageQualified:
		return cyan
	case analytics.StageStalled:
		return red
	}
	return yellow
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func outcomeLabel(o *domain.Outcome) string {
	if o == nil {
		return "—"
	}
	return string(*o)
}

func renderAction(w io.Writer, a *domain.Action) {
	fmt.Fprintf(w, "  %s %s on %s, %s\n", a.ActionType.Label(), a.Surface, a.ChannelKey().Label(), statusColor(a.Status).Sprint(a.Status))
	if a.Note != "" {
		fmt.Fprintf(w, "  note: %s\n", a.Note)
	}
	if a.Outcome != nil {
		fmt.Fprintf(w, "  outcome: %s\n", *a.Outcome)
	}
}

func renderActionList(w io.Writer, actions []domain.Action) {
	if len(actions) == 0 {
		fmt.Fprintln(w, "No actions found")
		return
	}

	fmt.Fprintf(w, "%-36s  %-16s  %-10s  %-12s  %-15s  %-11s  %s\n",
		"ID", "CREATED", "TYPE", "CHANNEL", "STATUS", "OUTCOME", "NOTE")
	for i := range actions {
		a := &actions[i]
		fmt.Fprintf(w, "%-36s  %-16s  %-10s  %-12s  %s  %-11s  %s\n",
			a.ID,
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.ActionType,
			a.ChannelKey(),
			statusColor(a.Status).Sprintf("%-15s", a.Status),
			outcomeLabel(a.Outcome),
			a.Note,
		)
	}
	fmt.Fprintf(w, "%d action(s)\n", len(actions))
}

func renderToday(w io.Writer, v analytics.TodayView) {
	heading.Fprintf(w, "Today %s\n", v.Date)
	m := v.Metrics
	fmt.Fprintf(w, "  actions logged    %d\n", m.ActionsLogged)
	fmt.Fprintf(w, "  responses         %d\n", m.ResponsesLogged)
	fmt.Fprintf(w, "  active items      %d\n", m.ActiveItems)
	fmt.Fprintf(w, "  leads created     %d\n", m.LeadsCreated)
	fmt.Fprintf(w, "  revenue           $%.2f\n", m.Revenue)

	if len(v.PendingFollowUps) == 0 {
		fmt.Fprintln(w, faint.Sprint("  no pending follow-ups"))
		return
	}
	fmt.Fprintln(w, heading.Sprint("Pending follow-ups"))
	for _, f := range v.PendingFollowUps {
		channel := domain.ChannelUnknown
		if f.Channel != nil {
			channel = *f.Channel
		}
		fmt.Fprintf(w, "  %s  %-9s %-12s %s\n", f.CreatedAt.Format("15:04"), f.ActionType, channel.ShortLabel(), f.Note)
	}
}

func renderTodayLine(w io.Writer, at time.Time, v analytics.TodayView) {
	m := v.Metrics
	fmt.Fprintf(w, "%s  actions=%d responses=%d active=%d leads=%d revenue=$%.2f follow-ups=%d\n",
		faint.Sprint(at.Format("15:04:05")),
		m.ActionsLogged, m.ResponsesLogged, m.ActiveItems, m.LeadsCreated, m.Revenue, len(v.PendingFollowUps))
}

func renderPipeline(w io.Writer, v analytics.PipelineView) {
	c := v.Counts()
	heading.Fprintf(w, "Pipeline (%d active)\n", c.TotalActive)
	for _, st := range v.Stages {
		fmt.Fprintf(w, "%s (%d)\n", stageColor(st.ID).Sprint(st.Label), len(st.Items))
		for _, it := range st.Items {
			fmt.Fprintf(w, "  %-24s %-3dd  %s\n", it.Target, it.DaysSinceActivity, it.LastAction)
		}
	}
}

func renderPerformance(w io.Writer, v analytics.PerformanceView) {
	heading.Fprintf(w, "Performance %s (%s to %s)\n", v.Range, v.StartDate, v.EndDate)
	for _, s := range v.Series() {
		total := fmt.Sprintf("%g", s.Total)
		if s.ID == analytics.SeriesRevenue {
			total = fmt.Sprintf("$%.2f", s.Total)
		}
		fmt.Fprintf(w, "  %-20s %10s  %s\n", s.Label, total, sparkline(s.Data))
	}
	fmt.Fprintf(w, "  %-20s %10d\n", "All-time actions", v.TotalActions)
}

func renderMatrices(w io.Writer, v analytics.MatricesView) {
	heading.Fprintln(w, "Time → Return")
	for _, r := range v.TimeReturn {
		fmt.Fprintf(w, "  %-14s %-10s actions=%-4d outcomes=%-4d revenue=%s\n",
			r.Label, r.DimensionType, r.ActionsLogged, r.Outcomes, dollars(r.Revenue))
	}

	heading.Fprintln(w, "Value density")
	for _, r := range v.ValueDensity {
		fmt.Fprintf(w, "  %-14s %-10s actions=%-4d leads=%-4d revenue=%s\n",
			r.Dimension, r.DimensionType, r.Actions, r.Leads, dollars(r.Revenue))
	}

	heading.Fprintf(w, "Sense check (%d most recent)\n", len(v.Sense))
	for _, r := range v.Sense {
		fmt.Fprintf(w, "  %-24s icp=%-8s problem=%-8s outcome=%s\n", r.Label, r.ICPClarity, r.ProblemClarity, r.Outcome)
	}

	s := v.Stats
	fmt.Fprintf(w, "Totals: actions=%d outcomes=%d leads=%d revenue=%s\n",
		s.TotalActions, s.TotalOutcomes, s.TotalLeads, dollars(s.TotalRevenue))
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline scales the points onto eight block characters.
func sparkline(points []analytics.DataPoint) string {
	var peak float64
	for _, p := range points {
		if p.Value > peak {
			peak = p.Value
		}
	}
	var b strings.Builder
	for _, p := range points {
		idx := 0
		if peak > 0 {
			idx = int(p.Value / peak * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
