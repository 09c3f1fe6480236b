package action

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// LogActionInput holds the raw fields of a new action.
type LogActionInput struct {
	ActionType string
	Channel    *string
	Surface    string
	Note       string
	Outcome    *string
}

// Validate checks all fields and collects all errors.
func (i LogActionInput) Validate() error {
	var errs []domain.FieldError

	if i.ActionType == "" {
		errs = append(errs, domain.FieldError{Field: "actionType", Message: "required"})
	} else if !domain.ActionType(i.ActionType).IsValid() {
		errs = append(errs, unknownValue("actionType", i.ActionType))
	}
	if i.Channel != nil && !domain.Channel(*i.Channel).IsValid() {
		errs = append(errs, unknownValue("channel", *i.Channel))
	}
	if i.Surface != "" && !domain.Surface(i.Surface).IsValid() {
		errs = append(errs, unknownValue("surface", i.Surface))
	}
	if i.Outcome != nil && !domain.Outcome(*i.Outcome).IsValid() {
		errs = append(errs, unknownValue("outcome", *i.Outcome))
	}
	if noteTooLong(i.Note) {
		errs = append(errs, noteError())
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// params converts a validated input into creation parameters.
func (i LogActionInput) params() domain.NewActionParams {
	p := domain.NewActionParams{
		ActionType: domain.ActionType(i.ActionType),
		Surface:    domain.Surface(i.Surface),
		Note:       strings.TrimSpace(i.Note),
	}
	if i.Channel != nil {
		c := domain.Channel(*i.Channel)
		p.Channel = &c
	}
	if i.Outcome != nil {
		o := domain.Outcome(*i.Outcome)
		p.Outcome = &o
	}
	return p
}

// ListActionsInput holds the optional calendar-day filter, formatted YYYY-MM-DD.
type ListActionsInput struct {
	Date *string
}

// Validate checks all fields and collects all errors.
func (i ListActionsInput) Validate() error {
	if i.Date == nil {
		return nil
	}
	if _, err := domain.ParseDay(*i.Date); err != nil {
		return domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return nil
}

func (i ListActionsInput) filter() domain.ActionFilter {
	if i.Date == nil {
		return domain.ActionFilter{}
	}
	day, _ := domain.ParseDay(*i.Date)
	return domain.ActionFilter{Day: &day}
}

// UpdateActionInput holds a partial update. Nil fields are left unchanged.
type UpdateActionInput struct {
	Status  *string
	Note    *string
	Revenue *int64
	Outcome *string
}

// Validate checks all fields and collects all errors.
func (i UpdateActionInput) Validate() error {
	var errs []domain.FieldError

	if i.Status == nil && i.Note == nil && i.Revenue == nil && i.Outcome == nil {
		errs = append(errs, domain.FieldError{Field: "body", Message: "no fields to update"})
	}
	if i.Status != nil && !domain.Status(*i.Status).IsValid() {
		errs = append(errs, unknownValue("status", *i.Status))
	}
	if i.Note != nil && noteTooLong(*i.Note) {
		errs = append(errs, noteError())
	}
	if i.Revenue != nil && *i.Revenue < 0 {
		errs = append(errs, domain.FieldError{Field: "revenue", Message: "must be >= 0"})
	}
	if i.Outcome != nil && !domain.Outcome(*i.Outcome).IsValid() {
		errs = append(errs, unknownValue("outcome", *i.Outcome))
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateActionInput) patch() domain.ActionPatch {
	var p domain.ActionPatch
	if i.Status != nil {
		s := domain.Status(*i.Status)
		p.Status = &s
	}
	if i.Note != nil {
		n := strings.TrimSpace(*i.Note)
		p.Note = &n
	}
	if i.Revenue != nil {
		r := *i.Revenue
		p.Revenue = &r
	}
	if i.Outcome != nil {
		o := domain.Outcome(*i.Outcome)
		p.Outcome = &o
	}
	return p
}

func noteTooLong(note string) bool {
	return domain.NoteLength(strings.TrimSpace(note)) > MaxNoteLength
}

func noteError() domain.FieldError {
	return domain.FieldError{Field: "note", Message: fmt.Sprintf("max %d characters", MaxNoteLength)}
}

func unknownValue(field, value string) domain.FieldError {
	return domain.FieldError{Field: field, Message: fmt.Sprintf("unknown value %q", value)}
}
