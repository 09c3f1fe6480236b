package domain

// ActionType is the kind of outbound touchpoint that was logged.
type ActionType string

const (
	ActionTypeDM       ActionType = "dm"
	ActionTypePost     ActionType = "post"
	ActionTypeComment  ActionType = "comment"
	ActionTypeFollowUp ActionType = "followup"
)

// ActionTypes lists every action type in display order.
var ActionTypes = []ActionType{ActionTypeDM, ActionTypePost, ActionTypeComment, ActionTypeFollowUp}

func (t ActionType) String() string { return string(t) }

func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeDM, ActionTypePost, ActionTypeComment, ActionTypeFollowUp:
		return true
	}
	return false
}

// Label returns the human-readable name used in matrices.
func (t ActionType) Label() string {
	switch t {
	case ActionTypeDM:
		return "DM"
	case ActionTypePost:
		return "Post"
	case ActionTypeComment:
		return "Comment"
	case ActionTypeFollowUp:
		return "Follow-up"
	}
	return string(t)
}

// Channel is the network an action was performed on.
// A nil *Channel on an Action means the channel is unknown.
type Channel string

const (
	ChannelLinkedIn Channel = "linkedin"
	ChannelTwitter  Channel = "twitter"
	ChannelEmail    Channel = "email"
	ChannelReddit   Channel = "reddit"

	// ChannelUnknown is the grouping key for actions without a channel. It is never stored.
	ChannelUnknown Channel = "unknown"
)

// Channels lists every storable channel in display order.
var Channels = []Channel{ChannelLinkedIn, ChannelTwitter, ChannelEmail, ChannelReddit}

func (c Channel) String() string { return string(c) }

// IsValid reports whether c may be stored on an action. ChannelUnknown is not storable.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelLinkedIn, ChannelTwitter, ChannelEmail, ChannelReddit:
		return true
	}
	return false
}

// Label returns the long display name used in matrices.
func (c Channel) Label() string {
	switch c {
	case ChannelLinkedIn:
		return "LinkedIn"
	case ChannelTwitter:
		return "X (Twitter)"
	case ChannelEmail:
		return "Email"
	case ChannelReddit:
		return "Reddit"
	case ChannelUnknown:
		return "Unknown"
	}
	return string(c)
}

// ShortLabel returns the compact display name used on pipeline cards.
func (c Channel) ShortLabel() string {
	if c == ChannelTwitter {
		return "X"
	}
	return c.Label()
}

// Surface is the visibility scope of an action.
type Surface string

const (
	SurfacePublic  Surface = "public"
	SurfacePrivate Surface = "private"
)

// Surfaces lists every surface in display order.
var Surfaces = []Surface{SurfacePublic, SurfacePrivate}

func (s Surface) String() string { return string(s) }

func (s Surface) IsValid() bool {
	return s == SurfacePublic || s == SurfacePrivate
}

func (s Surface) Label() string {
	if s == SurfacePrivate {
		return "Private"
	}
	return "Public"
}

// Status is the lifecycle state of an action.
type Status string

const (
	StatusLogged        Status = "logged"
	StatusNeedsFollowUp Status = "needs-followup"
	StatusCompleted     Status = "completed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusLogged, StatusNeedsFollowUp, StatusCompleted:
		return true
	}
	return false
}

// Outcome is the result signal attached to an action.
type Outcome string

const (
	OutcomeResponse   Outcome = "response"
	OutcomeQualified  Outcome = "qualified"
	OutcomeNextStep   Outcome = "next-step"
	OutcomeClosedWon  Outcome = "closed-won"
	OutcomeClosedLost Outcome = "closed-lost"
)

// Outcomes lists every outcome value.
var Outcomes = []Outcome{OutcomeResponse, OutcomeQualified, OutcomeNextStep, OutcomeClosedWon, OutcomeClosedLost}

func (o Outcome) String() string { return string(o) }

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeResponse, OutcomeQualified, OutcomeNextStep, OutcomeClosedWon, OutcomeClosedLost:
		return true
	}
	return false
}

// Label returns the human-readable outcome used in the sense matrix.
func (o Outcome) Label() string {
	switch o {
	case OutcomeResponse:
		return "Response received"
	case OutcomeQualified:
		return "Qualified lead"
	case OutcomeNextStep:
		return "Next step agreed"
	case OutcomeClosedWon:
		return "Closed (Won)"
	case OutcomeClosedLost:
		return "Closed (Lost)"
	}
	return string(o)
}
