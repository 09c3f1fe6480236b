package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
	"github.com/heartmarshall/outbound-tracker/internal/service/analytics"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeFileConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "store:\n  driver: file\n  file_path: " + filepath.Join(dir, "actions.json") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e := &env{out: &out}
	err := e.execute(context.Background(), args)
	return out.String(), err
}

var loggedID = regexp.MustCompile(`Logged (\S+)`)

func TestActionctl_LogCompleteListReport(t *testing.T) {
	cfg := writeFileConfig(t)

	out, err := run(t, "--config", cfg, "log", "--type", "dm", "--channel", "linkedin", "--note", "intro to CTO", "--outcome", "qualified")
	require.NoError(t, err, out)
	m := loggedID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]
	assert.Contains(t, out, "note: intro to CTO")

	out, err = run(t, "--config", cfg, "complete", id)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Completed "+id)

	out, err = run(t, "--config", cfg, "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "1 action(s)")

	out, err = run(t, "--config", cfg, "report", "today", "--json")
	require.NoError(t, err, out)
	var today analytics.TodayView
	require.NoError(t, json.Unmarshal([]byte(out), &today))
	assert.Equal(t, 1, today.Metrics.ActionsLogged)
	assert.Equal(t, 1, today.Metrics.LeadsCreated)

	out, err = run(t, "--config", cfg, "report", "matrices")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Totals: actions=1 outcomes=1 leads=1 revenue=$0.00")
}

func TestActionctl_ValidationErrorsAreListed(t *testing.T) {
	cfg := writeFileConfig(t)

	_, err := run(t, "--config", cfg, "log", "--type", "call", "--surface", "internal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actionType:")
	assert.Contains(t, err.Error(), "surface:")
}

func TestActionctl_ArgumentErrors(t *testing.T) {
	cfg := writeFileConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{"log without type", []string{"log"}},
		{"complete without id", []string{"complete"}},
		{"unknown view", []string{"report", "weekly"}},
		{"bad range", []string{"report", "performance", "--range", "90d"}},
		{"migrate on file store", []string{"migrate"}},
		{"missing action", []string{"complete", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"--config", cfg}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestActionctl_StoreClosedAfterFailedCommand(t *testing.T) {
	cfg := writeFileConfig(t)

	for _, args := range [][]string{
		{"--config", cfg, "complete", "nope"},
		{"--config", cfg, "list"},
	} {
		e := &env{out: &bytes.Buffer{}}
		_ = e.execute(context.Background(), args)
		assert.Nil(t, e.store, "store left open after %v", args)
	}
}

func TestRenderPipeline(t *testing.T) {
	view := analytics.PipelineView{Stages: []analytics.PipelineStage{
		{ID: analytics.StageEngaged, Label: "Engaged", Items: []analytics.PipelineItem{
			{ID: "a1", Target: "LinkedIn DM", LastAction: "Replied", DaysSinceActivity: 2, Stage: analytics.StageEngaged},
		}},
		{ID: analytics.StageQualified, Label: "Qualified", Items: []analytics.PipelineItem{}},
		{ID: analytics.StageClosing, Label: "Closing", Items: []analytics.PipelineItem{}},
		{ID: analytics.StageStalled, Label: "Stalled", Items: []analytics.PipelineItem{}},
	}}

	var buf bytes.Buffer
	renderPipeline(&buf, view)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Pipeline (1 active)\n"), out)
	assert.Contains(t, out, "Engaged (1)")
	assert.Contains(t, out, "LinkedIn DM")
	assert.Contains(t, out, "Stalled (0)")
}

func TestRenderTodayLine(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC)
	renderTodayLine(&buf, at, analytics.TodayView{
		Metrics:          analytics.TodayMetrics{ActionsLogged: 4, ResponsesLogged: 1, ActiveItems: 2, Revenue: 12.5},
		PendingFollowUps: []analytics.FollowUpItem{{ID: "f1"}},
	})

	assert.Equal(t, "09:05:00  actions=4 responses=1 active=2 leads=0 revenue=$12.50 follow-ups=1\n", buf.String())
}

func TestSparkline(t *testing.T) {
	points := []analytics.DataPoint{{Value: 0}, {Value: 2}, {Value: 4}}
	assert.Equal(t, "▁▄█", sparkline(points))
	assert.Equal(t, "▁▁", sparkline([]analytics.DataPoint{{}, {}}))
}

func TestDollars(t *testing.T) {
	assert.Equal(t, "$0.00", dollars(0))
	assert.Equal(t, "$1250.05", dollars(125005))
}

func TestOutcomeLabel(t *testing.T) {
	o := domain.OutcomeNextStep
	assert.Equal(t, "next-step", outcomeLabel(&o))
	assert.Equal(t, "—", outcomeLabel(nil))
}
