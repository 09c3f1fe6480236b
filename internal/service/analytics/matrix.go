package analytics

import (
	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// SenseSampleSize is how many of the most recent actions the sense matrix inspects.
const SenseSampleSize = 20

// senseNoteMinLen is the note length above which an action without an outcome
// counts as having an unclear ICP rather than an unknown one.
const senseNoteMinLen = 10

// noOutcomeLabel is shown in the sense matrix for actions without an outcome.
const noOutcomeLabel = "—"

// BuildMatrices computes the time→return, sense and value-density matrices
// together with global stats. Groups are emitted in enum order; the unknown
// channel comes last. Groups without actions produce no row.
func BuildMatrices(snap Snapshot) MatricesView {
	byType := groupBy(snap.actions, domain.ActionTypes, func(a *domain.Action) domain.ActionType { return a.ActionType })
	byChannel := groupBy(snap.actions, channelOrder, (*domain.Action).ChannelKey)
	bySurface := groupBy(snap.actions, domain.Surfaces, func(a *domain.Action) domain.Surface { return a.Surface })

	view := MatricesView{
		TimeReturn:   make([]TimeReturnRow, 0, len(byType)+len(byChannel)),
		Sense:        buildSense(snap.actions),
		ValueDensity: make([]ValueDensityRow, 0, len(byChannel)+len(bySurface)+len(byType)),
		Stats:        buildStats(snap.actions),
	}

	for _, g := range byType {
		view.TimeReturn = append(view.TimeReturn, timeReturnRow("tr-"+string(g.key), g.key.Label(), DimensionActionType, g.actions))
	}
	for _, g := range byChannel {
		view.TimeReturn = append(view.TimeReturn, timeReturnRow("tr-ch-"+string(g.key), g.key.Label(), DimensionChannel, g.actions))
	}

	for _, g := range byChannel {
		view.ValueDensity = append(view.ValueDensity, valueDensityRow("vd-ch-"+string(g.key), g.key.Label(), DimensionChannel, g.actions))
	}
	for _, g := range bySurface {
		view.ValueDensity = append(view.ValueDensity, valueDensityRow("vd-sf-"+string(g.key), g.key.Label(), DimensionSurface, g.actions))
	}
	for _, g := range byType {
		view.ValueDensity = append(view.ValueDensity, valueDensityRow("vd-at-"+string(g.key), g.key.Label(), DimensionActionType, g.actions))
	}

	return view
}

var channelOrder = append(append([]domain.Channel{}, domain.Channels...), domain.ChannelUnknown)

type group[K comparable] struct {
	key     K
	actions []*domain.Action
}

// groupBy partitions actions by key. Keys listed in order come first in that
// order; any other key follows in order of first appearance.
func groupBy[K comparable](actions []domain.Action, order []K, key func(*domain.Action) K) []group[K] {
	members := make(map[K][]*domain.Action)
	var extra []K
	known := make(map[K]bool, len(order))
	for _, k := range order {
		known[k] = true
	}

	for i := range actions {
		a := &actions[i]
		k := key(a)
		if _, seen := members[k]; !seen && !known[k] {
			extra = append(extra, k)
		}
		members[k] = append(members[k], a)
	}

	groups := make([]group[K], 0, len(members))
	for _, k := range append(append([]K{}, order...), extra...) {
		if as := members[k]; len(as) > 0 {
			groups = append(groups, group[K]{key: k, actions: as})
		}
	}
	return groups
}

func timeReturnRow(id, label string, dim Dimension, actions []*domain.Action) TimeReturnRow {
	row := TimeReturnRow{
		ID:            id,
		Label:         label,
		DimensionType: dim,
		ActionsLogged: len(actions),
	}
	for _, a := range actions {
		if a.IsProgressOutcome() {
			row.Outcomes++
		}
		row.Revenue += a.Revenue
	}
	return row
}

func valueDensityRow(id, label string, dim Dimension, actions []*domain.Action) ValueDensityRow {
	row := ValueDensityRow{
		ID:            id,
		Dimension:     label,
		DimensionType: dim,
		Actions:       len(actions),
	}
	for _, a := range actions {
		if a.IsLead {
			row.Leads++
		}
		row.Revenue += a.Revenue
	}
	return row
}

// buildSense tags the first SenseSampleSize actions. Snapshots are ordered
// most-recent-first, so this is the most recent sample.
func buildSense(actions []domain.Action) []SenseRow {
	n := min(len(actions), SenseSampleSize)
	rows := make([]SenseRow, 0, n)

	for i := range actions[:n] {
		a := &actions[i]

		icp, problem := ClarityUnknown, ClarityUnknown
		switch {
		case a.HasOutcome():
			icp, problem = ClarityClear, ClarityClear
		case domain.NoteLength(a.Note) > senseNoteMinLen:
			icp = ClarityUnclear
		}

		outcome := noOutcomeLabel
		if a.Outcome != nil {
			outcome = a.Outcome.Label()
		}

		label := a.Note
		if label == "" {
			label = a.ChannelKey().Label() + " " + a.ActionType.Label()
		}

		rows = append(rows, SenseRow{
			ID:             "sense-" + a.ID,
			ActionID:       a.ID,
			Label:          label,
			ICPClarity:     icp,
			ProblemClarity: problem,
			Outcome:        outcome,
			Timestamp:      a.CreatedAt,
		})
	}
	return rows
}

func buildStats(actions []domain.Action) GlobalStats {
	stats := GlobalStats{TotalActions: len(actions)}
	for i := range actions {
		a := &actions[i]
		if a.HasOutcome() {
			stats.TotalOutcomes++
		}
		if a.IsLead {
			stats.TotalLeads++
		}
		stats.TotalRevenue += a.Revenue
	}
	return stats
}
