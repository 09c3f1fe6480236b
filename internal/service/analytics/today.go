package analytics

import (
	"time"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// BuildToday summarizes the actions created on the UTC calendar day of day.
// ActiveItems counts the day's actions whose status is needs-followup.
func BuildToday(snap Snapshot, day time.Time) TodayView {
	date := domain.DayStart(day).Format(domain.DateLayout)

	view := TodayView{
		Date:             date,
		PendingFollowUps: []FollowUpItem{},
	}

	var revenueCents int64
	for i := range snap.actions {
		a := &snap.actions[i]
		if a.Day() != date {
			continue
		}

		view.Metrics.ActionsLogged++
		if a.HasResponse {
			view.Metrics.ResponsesLogged++
		}
		if a.IsLead {
			view.Metrics.LeadsCreated++
		}
		if a.Status == domain.StatusNeedsFollowUp {
			view.Metrics.ActiveItems++
		}
		revenueCents += a.Revenue

		if a.IsPendingFollowUp() {
			view.PendingFollowUps = append(view.PendingFollowUps, followUpItem(a))
		}
	}
	view.Metrics.Revenue = centsToMajor(revenueCents)

	return view
}

func followUpItem(a *domain.Action) FollowUpItem {
	return FollowUpItem{
		ID:         a.ID,
		ActionType: a.ActionType,
		Channel:    a.Channel,
		Surface:    a.Surface,
		Note:       a.Note,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
}

func centsToMajor(cents int64) float64 {
	return float64(cents) / 100
}
