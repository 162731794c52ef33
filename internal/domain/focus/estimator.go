package focus

import "time"

// DayPart is one of the three time-of-day buckets the estimator scores.
type DayPart string

const (
	DayPartMorning   DayPart = "morning"
	DayPartAfternoon DayPart = "afternoon"
	DayPartEvening   DayPart = "evening"
)

// DayPartForHour maps an hour of day (0-23) into its bucket:
// morning [6,12), afternoon [12,18), evening [18,24) and [0,6).
func DayPartForHour(hour int) DayPart {
	switch {
	case hour >= 6 && hour < 12:
		return DayPartMorning
	case hour >= 12 && hour < 18:
		return DayPartAfternoon
	default:
		return DayPartEvening
	}
}

// SessionSample is the slice of a completed focus session the estimator
// needs: when it started and how productive it was.
type SessionSample struct {
	StartTime         time.Time
	ProductivityScore float64
}

// PatternVector holds one productivity score per day part. It is derived
// on every request from session history and never persisted.
type PatternVector struct {
	Morning   float64 `json:"morning"`
	Afternoon float64 `json:"afternoon"`
	Evening   float64 `json:"evening"`
}

// Score returns the vector's value for the given day part.
func (v PatternVector) Score(part DayPart) float64 {
	switch part {
	case DayPartMorning:
		return v.Morning
	case DayPartAfternoon:
		return v.Afternoon
	default:
		return v.Evening
	}
}

// estimatePatterns aggregates completed sessions into a per-day-part mean
// productivity score. Buckets with no sessions fall back to the configured
// priors, so an empty history yields the all-prior vector rather than a
// degenerate result.
func estimatePatterns(sessions []SessionSample, params *Params) PatternVector {
	var sums, counts [3]float64

	for _, s := range sessions {
		score := s.ProductivityScore
		switch DayPartForHour(s.StartTime.Hour()) {
		case DayPartMorning:
			sums[0] += score
			counts[0]++
		case DayPartAfternoon:
			sums[1] += score
			counts[1]++
		default:
			sums[2] += score
			counts[2]++
		}
	}

	bucketMean := func(i int, part DayPart) float64 {
		if counts[i] == 0 {
			return params.Priors[part]
		}
		return sums[i] / counts[i]
	}

	return PatternVector{
		Morning:   bucketMean(0, DayPartMorning),
		Afternoon: bucketMean(1, DayPartAfternoon),
		Evening:   bucketMean(2, DayPartEvening),
	}
}
