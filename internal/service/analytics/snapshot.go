package analytics

import (
	"sort"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// Snapshot is an immutable, validated copy of the action set as read at one
// point in time. It is the only input of every builder in this package.
//
// Actions are held most-recent-first (descending CreatedAt); records with equal
// timestamps keep the order the store returned them in.
type Snapshot struct {
	actions []domain.Action
}

// Rejected is a record that NewSnapshot dropped because it failed validation.
type Rejected struct {
	ID  string
	Err error
}

// NewSnapshot copies actions, drops malformed records and orders the rest
// most-recent-first. Dropped records are returned so the caller can report them.
func NewSnapshot(actions []domain.Action) (Snapshot, []Rejected) {
	kept := make([]domain.Action, 0, len(actions))
	var rejected []Rejected

	for i := range actions {
		a := cloneAction(actions[i])
		if err := a.Validate(); err != nil {
			rejected = append(rejected, Rejected{ID: a.ID, Err: err})
			continue
		}
		kept = append(kept, a)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].CreatedAt.After(kept[j].CreatedAt)
	})

	return Snapshot{actions: kept}, rejected
}

// Len returns the number of valid actions.
func (s Snapshot) Len() int { return len(s.actions) }

// Actions returns the ordered actions. Callers must not modify the result.
func (s Snapshot) Actions() []domain.Action { return s.actions }

// cloneAction detaches the pointer fields so a snapshot never aliases caller memory.
func cloneAction(a domain.Action) domain.Action {
	if a.Channel != nil {
		c := *a.Channel
		a.Channel = &c
	}
	if a.Outcome != nil {
		o := *a.Outcome
		a.Outcome = &o
	}
	return a
}
