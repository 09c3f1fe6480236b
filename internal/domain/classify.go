package domain

// Flags are the booleans derived from an outcome at creation time.
type Flags struct {
	HasResponse bool
	IsLead      bool
	IsClosed    bool
}

// Classify maps an outcome to its derived flags. A nil outcome yields all false.
//
//	hasResponse = outcome ∈ {response, qualified, next-step, closed-won, closed-lost}
//	isLead      = outcome ∈ {qualified, closed-won}
//	isClosed    = outcome ∈ {closed-won, closed-lost}
func Classify(outcome *Outcome) Flags {
	if outcome == nil {
		return Flags{}
	}

	var f Flags
	switch *outcome {
	case OutcomeResponse, OutcomeNextStep:
		f.HasResponse = true
	case OutcomeQualified:
		f.HasResponse = true
		f.IsLead = true
	case OutcomeClosedWon:
		f.HasResponse = true
		f.IsLead = true
		f.IsClosed = true
	case OutcomeClosedLost:
		f.HasResponse = true
		f.IsClosed = true
	}
	return f
}

// InitialStatus is the status assigned when an action is created:
// completed if closed, needs-followup for follow-ups, logged otherwise.
func InitialStatus(t ActionType, f Flags) Status {
	switch {
	case f.IsClosed:
		return StatusCompleted
	case t == ActionTypeFollowUp:
		return StatusNeedsFollowUp
	default:
		return StatusLogged
	}
}

// IsPipelineEligible reports whether an action shows any engagement signal:
// hasResponse, or an outcome of qualified, next-step or response.
// It reads the stored HasResponse flag, not one recomputed from Outcome.
func (a *Action) IsPipelineEligible() bool {
	return a.HasResponse ||
		a.OutcomeIs(OutcomeQualified) ||
		a.OutcomeIs(OutcomeNextStep) ||
		a.OutcomeIs(OutcomeResponse)
}

// IsTerminal reports whether an action has left the live pipeline:
// status completed, or a closed-won / closed-lost outcome.
func (a *Action) IsTerminal() bool {
	return a.Status == StatusCompleted ||
		a.OutcomeIs(OutcomeClosedWon) ||
		a.OutcomeIs(OutcomeClosedLost)
}

// InLivePipeline combines eligibility and non-terminality.
func (a *Action) InLivePipeline() bool {
	return a.IsPipelineEligible() && !a.IsTerminal()
}

// IsPendingFollowUp reports whether the action belongs in the follow-up queue:
// status needs-followup, or a follow-up that is still only logged.
func (a *Action) IsPendingFollowUp() bool {
	return a.Status == StatusNeedsFollowUp ||
		(a.Status == StatusLogged && a.ActionType == ActionTypeFollowUp)
}

// IsProgressOutcome reports an outcome that signals progress: any outcome except closed-lost.
func (a *Action) IsProgressOutcome() bool {
	return a.Outcome != nil && *a.Outcome != OutcomeClosedLost
}
