package domain

import (
	"time"
	"unicode/utf16"
)

// Action is a single logged outbound-sales touchpoint.
//
// HasResponse, IsLead and the initial Status are derived from Outcome once, when the
// action is created (see NewAction), and stored. Nothing recomputes them afterwards:
// if Outcome is edited later the flags keep their creation-time values.
type Action struct {
	ID          string
	ActionType  ActionType
	Channel     *Channel
	Surface     Surface
	Note        string
	CreatedAt   time.Time
	Status      Status
	Outcome     *Outcome
	HasResponse bool
	IsLead      bool
	Revenue     int64 // cents
}

// NewActionParams holds the caller-supplied fields of a new action.
type NewActionParams struct {
	ID         string
	ActionType ActionType
	Channel    *Channel
	Surface    Surface
	Note       string
	Outcome    *Outcome
	CreatedAt  time.Time
}

// NewAction builds an action and applies the classification rules exactly once.
// An empty surface defaults to public; revenue starts at zero.
func NewAction(p NewActionParams) Action {
	surface := p.Surface
	if surface == "" {
		surface = SurfacePublic
	}

	flags := Classify(p.Outcome)

	return Action{
		ID:          p.ID,
		ActionType:  p.ActionType,
		Channel:     p.Channel,
		Surface:     surface,
		Note:        p.Note,
		CreatedAt:   p.CreatedAt.UTC(),
		Status:      InitialStatus(p.ActionType, flags),
		Outcome:     p.Outcome,
		HasResponse: flags.HasResponse,
		IsLead:      flags.IsLead,
		Revenue:     0,
	}
}

// ChannelKey returns the grouping key for the action's channel; nil maps to ChannelUnknown.
func (a *Action) ChannelKey() Channel {
	if a.Channel == nil {
		return ChannelUnknown
	}
	return *a.Channel
}

// HasOutcome reports whether any outcome is recorded.
func (a *Action) HasOutcome() bool {
	return a.Outcome != nil
}

// OutcomeIs reports whether the recorded outcome equals o.
func (a *Action) OutcomeIs(o Outcome) bool {
	return a.Outcome != nil && *a.Outcome == o
}

// Day returns the UTC calendar day the action was created on, formatted YYYY-MM-DD.
func (a *Action) Day() string {
	return a.CreatedAt.UTC().Format(DateLayout)
}

// Validate checks that every enum field holds a known value.
// It is used to reject malformed records read back from a store.
func (a *Action) Validate() error {
	var errs []FieldError

	if a.ID == "" {
		errs = append(errs, FieldError{Field: "id", Message: "required"})
	}
	if !a.ActionType.IsValid() {
		errs = append(errs, FieldError{Field: "actionType", Message: "unknown value " + quote(string(a.ActionType))})
	}
	if a.Channel != nil && !a.Channel.IsValid() {
		errs = append(errs, FieldError{Field: "channel", Message: "unknown value " + quote(string(*a.Channel))})
	}
	if !a.Surface.IsValid() {
		errs = append(errs, FieldError{Field: "surface", Message: "unknown value " + quote(string(a.Surface))})
	}
	if !a.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "unknown value " + quote(string(a.Status))})
	}
	if a.Outcome != nil && !a.Outcome.IsValid() {
		errs = append(errs, FieldError{Field: "outcome", Message: "unknown value " + quote(string(*a.Outcome))})
	}
	if a.CreatedAt.IsZero() {
		errs = append(errs, FieldError{Field: "createdAt", Message: "required"})
	}
	if a.Revenue < 0 {
		errs = append(errs, FieldError{Field: "revenue", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func quote(s string) string { return `"` + s + `"` }

// DateLayout is the calendar-day format used for filters and time-series buckets.
const DateLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into midnight UTC of that day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DayStart truncates t to midnight UTC of its calendar day.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NoteLength measures a note in UTF-16 code units, the unit the browser client
// uses for its character counter. Characters outside the BMP count as two.
func NoteLength(note string) int {
	n := 0
	for _, r := range note {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
