package analytics

import (
	"time"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// View types are plain serializable values handed to the presentation layer.

// TodayView is the same-day activity summary.
type TodayView struct {
	Date             string         `json:"date"`
	Metrics          TodayMetrics   `json:"metrics"`
	PendingFollowUps []FollowUpItem `json:"pendingFollowUps"`
}

// TodayMetrics are the counters of the day's actions.
type TodayMetrics struct {
	ActionsLogged   int     `json:"actionsLogged"`
	ResponsesLogged int     `json:"responsesLogged"`
	ActiveItems     int     `json:"activeItems"`
	LeadsCreated    int     `json:"leadsCreated"`
	Revenue         float64 `json:"revenue"` // major units
}

// FollowUpItem is an action waiting in the follow-up queue.
type FollowUpItem struct {
	ID         string            `json:"id"`
	ActionType domain.ActionType `json:"actionType"`
	Channel    *domain.Channel   `json:"channel"`
	Surface    domain.Surface    `json:"surface"`
	Note       string            `json:"note"`
	Status     domain.Status     `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Stage is a pipeline bucket.
type Stage string

const (
	StageEngaged   Stage = "engaged"
	StageQualified Stage = "qualified"
	StageClosing   Stage = "closing"
	StageStalled   Stage = "stalled"
)

// Stages lists the buckets in their fixed output order.
var Stages = []Stage{StageEngaged, StageQualified, StageClosing, StageStalled}

func (s Stage) Label() string {
	switch s {
	case StageEngaged:
		return "Engaged"
	case StageQualified:
		return "Qualified"
	case StageClosing:
		return "Closing"
	case StageStalled:
		return "Stalled"
	}
	return string(s)
}

// PipelineItem is one in-flight conversation on the board.
type PipelineItem struct {
	ID                string          `json:"id"`
	Target            string          `json:"target"`
	LastAction        string          `json:"lastAction"`
	LastActivityTime  time.Time       `json:"lastActivityTime"`
	DaysSinceActivity int             `json:"daysSinceActivity"`
	Channel           *domain.Channel `json:"channel"`
	Outcome           *domain.Outcome `json:"outcome"`
	Stage             Stage           `json:"status"`
}

// PipelineStage is one column of the board. Items is never nil.
type PipelineStage struct {
	ID    Stage          `json:"id"`
	Label string         `json:"label"`
	Items []PipelineItem `json:"items"`
}

// PipelineView is the board: always four stages in Stages order.
type PipelineView struct {
	Stages []PipelineStage `json:"stages"`
}

// PipelineCounts are per-stage sizes. They are not stored; see PipelineView.Counts.
type PipelineCounts struct {
	TotalActive int `json:"totalActive"`
	Engaged     int `json:"engaged"`
	Qualified   int `json:"qualified"`
	Closing     int `json:"closing"`
	Stalled     int `json:"stalled"`
}

// Counts sums the stage sizes on every call.
func (p PipelineView) Counts() PipelineCounts {
	var c PipelineCounts
	for _, st := range p.Stages {
		n := len(st.Items)
		c.TotalActive += n
		switch st.ID {
		case StageEngaged:
			c.Engaged = n
		case StageQualified:
			c.Qualified = n
		case StageClosing:
			c.Closing = n
		case StageStalled:
			c.Stalled = n
		}
	}
	return c
}

// Stage returns the bucket with the given id, or an empty stage.
func (p PipelineView) Stage(id Stage) PipelineStage {
	for _, st := range p.Stages {
		if st.ID == id {
			return st
		}
	}
	return PipelineStage{ID: id, Label: id.Label(), Items: []PipelineItem{}}
}

// DataPoint is one daily bucket of a series.
type DataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TimeSeries is a contiguous daily series with its total.
type TimeSeries struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Data  []DataPoint `json:"data"`
	Total float64     `json:"total"`
}

// PerformanceView holds the five parallel series over one calendar range.
type PerformanceView struct {
	Range     TimeRange  `json:"range"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Actions   TimeSeries `json:"actionsPerDay"`
	Responses TimeSeries `json:"responsesPerDay"`
	Leads     TimeSeries `json:"leadsPerDay"`
	Revenue   TimeSeries `json:"revenueOverTime"`
	Pipeline  TimeSeries `json:"pipelineSizeOverTime"`
	// TotalActions counts the whole snapshot, including actions outside the range.
	TotalActions int `json:"totalActions"`
}

// Series returns the five series in a fixed order.
func (v PerformanceView) Series() []TimeSeries {
	return []TimeSeries{v.Actions, v.Responses, v.Leads, v.Revenue, v.Pipeline}
}

// Dimension discriminates which grouping a matrix row came from.
type Dimension string

const (
	DimensionChannel    Dimension = "channel"
	DimensionSurface    Dimension = "surface"
	DimensionActionType Dimension = "actionType"
)

// TimeReturnRow compares effort and return for one action type or one channel.
// Time tracking does not exist, so TimeSpentMins and ReturnPerHour are always nil.
type TimeReturnRow struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	DimensionType Dimension `json:"dimensionType"`
	ActionsLogged int       `json:"actionsLogged"`
	TimeSpentMins *int      `json:"timeSpentMins"`
	Outcomes      int       `json:"outcomes"`
	Revenue       int64     `json:"revenue"` // cents
	ReturnPerHour *float64  `json:"returnPerHour"`
}

// Clarity is a descriptive tag on a sense-matrix row.
type Clarity string

const (
	ClarityClear   Clarity = "clear"
	ClarityUnclear Clarity = "unclear"
	ClarityUnknown Clarity = "unknown"
)

// SenseRow is a descriptive quality check of one action. No score is computed.
type SenseRow struct {
	ID             string    `json:"id"`
	ActionID       string    `json:"actionId"`
	Label          string    `json:"label"`
	ICPClarity     Clarity   `json:"icpClarity"`
	ProblemClarity Clarity   `json:"problemClarity"`
	Outcome        string    `json:"outcome"`
	Timestamp      time.Time `json:"timestamp"`
}

// ValueDensityRow counts actions, leads and revenue for one channel, surface or action type.
type ValueDensityRow struct {
	ID            string    `json:"id"`
	Dimension     string    `json:"dimension"`
	DimensionType Dimension `json:"dimensionType"`
	Actions       int       `json:"actions"`
	Leads         int       `json:"leads"`
	Revenue       int64     `json:"revenue"` // cents
}

// GlobalStats are raw counts over the whole snapshot. No ratios are derived.
type GlobalStats struct {
	TotalActions  int   `json:"totalActions"`
	TotalOutcomes int   `json:"totalOutcomes"`
	TotalLeads    int   `json:"totalLeads"`
	TotalRevenue  int64 `json:"totalRevenue"` // cents
}

// MatricesView bundles the three matrices and the global stats.
type MatricesView struct {
	TimeReturn   []TimeReturnRow   `json:"timeReturnMatrix"`
	Sense        []SenseRow        `json:"senseMatrix"`
	ValueDensity []ValueDensityRow `json:"valueDensityMatrix"`
	Stats        GlobalStats       `json:"stats"`
}

// Dashboard is every view computed for one request.
type Dashboard struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Today       TodayView       `json:"today"`
	Pipeline    PipelineView    `json:"pipeline"`
	Performance PerformanceView `json:"performance"`
	Matrices    MatricesView    `json:"matrices"`
}
