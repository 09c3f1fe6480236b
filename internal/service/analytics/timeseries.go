package analytics

import (
	"fmt"
	"time"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// TimeRange selects how far back the performance series reach.
type TimeRange string

const (
	Range7d  TimeRange = "7d"
	Range14d TimeRange = "14d"
	Range30d TimeRange = "30d"
	RangeAll TimeRange = "all"
)

// DefaultTimeRange is used when the caller does not pick one.
const DefaultTimeRange = Range30d

// TimeRanges lists the accepted selectors.
var TimeRanges = []TimeRange{Range7d, Range14d, Range30d, RangeAll}

// ParseTimeRange validates a selector. An empty string yields DefaultTimeRange.
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return DefaultTimeRange, nil
	}
	r := TimeRange(s)
	if !r.IsValid() {
		return "", domain.NewValidationError("range", fmt.Sprintf("must be one of 7d, 14d, 30d, all; got %q", s))
	}
	return r, nil
}

func (r TimeRange) IsValid() bool {
	switch r {
	case Range7d, Range14d, Range30d, RangeAll:
		return true
	}
	return false
}

// lookbackDays returns N for the fixed ranges and 0 for RangeAll.
func (r TimeRange) lookbackDays() int {
	switch r {
	case Range7d:
		return 7
	case Range14d:
		return 14
	case Range30d:
		return 30
	}
	return 0
}

// Series identifiers.
const (
	SeriesActions   = "actions"
	SeriesResponses = "responses"
	SeriesLeads     = "leads"
	SeriesRevenue   = "revenue"
	SeriesPipeline  = "pipeline"
)

// BuildPerformance computes the five daily series over the inclusive calendar
// from the range's start day to the UTC day of now. Every series has one point
// per day with no gaps, in ascending order.
func BuildPerformance(snap Snapshot, rng TimeRange, now time.Time) (PerformanceView, error) {
	if !rng.IsValid() {
		return PerformanceView{}, domain.NewValidationError("range", fmt.Sprintf("unknown time range %q", rng))
	}

	today := domain.DayStart(now)
	start := startDate(snap, rng, today)
	n := int(today.Sub(start)/day) + 1

	var (
		actions   = make([]int, n)
		responses = make([]int, n)
		leads     = make([]int, n)
		revenue   = make([]int64, n) // cents
		pipeline  = make([]int, n)
	)

	for i := range snap.actions {
		a := &snap.actions[i]
		idx := int(domain.DayStart(a.CreatedAt).Sub(start) / day)
		if idx < 0 || idx >= n {
			continue
		}

		actions[idx]++
		if a.HasResponse {
			responses[idx]++
		}
		if a.IsLead {
			leads[idx]++
		}
		revenue[idx] += a.Revenue
		if a.InLivePipeline() {
			pipeline[idx]++
		}
	}

	dates := make([]string, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(domain.DateLayout)
	}

	return PerformanceView{
		Range:        rng,
		StartDate:    dates[0],
		EndDate:      dates[n-1],
		Actions:      countSeries(SeriesActions, "Actions Logged", dates, actions),
		Responses:    countSeries(SeriesResponses, "Responses Received", dates, responses),
		Leads:        countSeries(SeriesLeads, "Leads Created", dates, leads),
		Revenue:      revenueSeries(dates, revenue),
		Pipeline:     countSeries(SeriesPipeline, "Pipeline Activity", dates, pipeline),
		TotalActions: snap.Len(),
	}, nil
}

// startDate resolves the first day of the calendar. It never lies after today.
func startDate(snap Snapshot, rng TimeRange, today time.Time) time.Time {
	var start time.Time
	if rng == RangeAll {
		start = today
		if earliest, ok := earliestDay(snap); ok {
			start = earliest
		}
	} else {
		start = today.AddDate(0, 0, -rng.lookbackDays())
	}

	if start.After(today) {
		return today
	}
	return start
}

func earliestDay(snap Snapshot) (time.Time, bool) {
	if snap.Len() == 0 {
		return time.Time{}, false
	}
	earliest := snap.actions[0].CreatedAt
	for i := range snap.actions {
		if snap.actions[i].CreatedAt.Before(earliest) {
			earliest = snap.actions[i].CreatedAt
		}
	}
	return domain.DayStart(earliest), true
}

func countSeries(id, label string, dates []string, counts []int) TimeSeries {
	s := TimeSeries{ID: id, Label: label, Data: make([]DataPoint, len(dates))}
	total := 0
	for i, d := range dates {
		s.Data[i] = DataPoint{Date: d, Value: float64(counts[i])}
		total += counts[i]
	}
	s.Total = float64(total)
	return s
}

// revenueSeries converts per-day cents to major units. The total is taken from
// the cents sum so it matches the matrices' revenue exactly.
func revenueSeries(dates []string, cents []int64) TimeSeries {
	s := TimeSeries{ID: SeriesRevenue, Label: "Revenue", Data: make([]DataPoint, len(dates))}
	var total int64
	for i, d := range dates {
		s.Data[i] = DataPoint{Date: d, Value: centsToMajor(cents[i])}
		total += cents[i]
	}
	s.Total = centsToMajor(total)
	return s
}
