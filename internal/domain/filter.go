package domain

import "time"

// ActionFilter narrows a store read. A nil Day returns every action.
type ActionFilter struct {
	Day *time.Time // any instant within the wanted UTC calendar day
}

// ActionPatch holds a partial update. Only non-nil fields are applied.
//
// Outcome is stored as given; HasResponse, IsLead and Status are not recomputed from it.
type ActionPatch struct {
	Status  *Status
	Note    *string
	Revenue *int64
	Outcome *Outcome
}

// IsEmpty reports whether the patch changes nothing.
func (p ActionPatch) IsEmpty() bool {
	return p.Status == nil && p.Note == nil && p.Revenue == nil && p.Outcome == nil
}

// Apply returns a copy of a with the patch applied.
func (p ActionPatch) Apply(a Action) Action {
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Note != nil {
		a.Note = *p.Note
	}
	if p.Revenue != nil {
		a.Revenue = *p.Revenue
	}
	if p.Outcome != nil {
		o := *p.Outcome
		a.Outcome = &o
	}
	return a
}
