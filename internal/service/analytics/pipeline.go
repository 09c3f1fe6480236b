package analytics

import (
	"fmt"
	"time"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// StalledThresholdDays is the inactivity, in whole days, after which a live
// conversation is reported as stalled regardless of its outcome.
const StalledThresholdDays = 7

const day = 24 * time.Hour

// BuildPipeline places every live pipeline action into exactly one stage.
//
// An eligible, non-terminal action that matches no stage rule breaks an
// invariant of the classification; the whole build fails with ErrInvariant
// rather than dropping the item.
func BuildPipeline(snap Snapshot, now time.Time) (PipelineView, error) {
	buckets := make(map[Stage][]PipelineItem, len(Stages))
	for _, s := range Stages {
		buckets[s] = []PipelineItem{}
	}

	for i := range snap.actions {
		a := &snap.actions[i]
		if !a.InLivePipeline() {
			continue
		}

		days := daysSince(a.CreatedAt, now)
		stage, err := assignStage(a, days)
		if err != nil {
			return PipelineView{}, err
		}
		buckets[stage] = append(buckets[stage], pipelineItem(a, days, stage))
	}

	view := PipelineView{Stages: make([]PipelineStage, 0, len(Stages))}
	for _, s := range Stages {
		view.Stages = append(view.Stages, PipelineStage{
			ID:    s,
			Label: s.Label(),
			Items: buckets[s],
		})
	}
	return view, nil
}

// assignStage applies the stage rules in priority order; the first match wins.
func assignStage(a *domain.Action, days int) (Stage, error) {
	switch {
	case days >= StalledThresholdDays:
		return StageStalled, nil
	case a.OutcomeIs(domain.OutcomeNextStep):
		return StageClosing, nil
	case a.OutcomeIs(domain.OutcomeQualified) || a.IsLead:
		return StageQualified, nil
	case a.HasResponse || a.OutcomeIs(domain.OutcomeResponse):
		return StageEngaged, nil
	}
	return "", fmt.Errorf("action %s: no pipeline stage matches: %w", a.ID, domain.ErrInvariant)
}

// daysSince is the number of whole 24-hour periods elapsed from t to now.
// A t in the future yields a negative count.
func daysSince(t, now time.Time) int {
	elapsed := now.Sub(t)
	days := int(elapsed / day)
	if elapsed < 0 && elapsed%day != 0 {
		days--
	}
	return days
}

func pipelineItem(a *domain.Action, days int, stage Stage) PipelineItem {
	return PipelineItem{
		ID:                a.ID,
		Target:            a.ChannelKey().ShortLabel() + " " + a.ActionType.Label(),
		LastAction:        lastActionText(a),
		LastActivityTime:  a.CreatedAt,
		DaysSinceActivity: days,
		Channel:           a.Channel,
		Outcome:           a.Outcome,
		Stage:             stage,
	}
}

func lastActionText(a *domain.Action) string {
	if a.Note != "" {
		return a.Note
	}
	return a.ActionType.Label() + " logged"
}
