package focus

import (
	"github.com/focusflow/focusflow-api/internal/domain"
)

// Params defines all configurable parameters for the focus-pattern
// estimator and the task ranker.
type Params struct {
	// Prior scores substituted for day parts that have no session history.
	// They encode the assumption that most people are more productive
	// early in the day, so a brand-new user still gets a sane ranking.
	Priors map[DayPart]float64

	// Weights mapping priority levels to the dominant ranking term.
	PriorityWeights map[domain.TaskPriority]float64

	// Multipliers combining the two ranking terms:
	// score = priorityWeight*PriorityTermWeight + focusMatch*FocusTermWeight.
	PriorityTermWeight float64
	FocusTermWeight    float64

	// SessionHistoryLimit caps how many recent completed sessions feed the
	// estimator.
	SessionHistoryLimit int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		Priors: map[DayPart]float64{
			DayPartMorning:   0.7,
			DayPartAfternoon: 0.5,
			DayPartEvening:   0.3,
		},

		PriorityWeights: map[domain.TaskPriority]float64{
			domain.TaskPriorityLow:    1,
			domain.TaskPriorityMedium: 2,
			domain.TaskPriorityHigh:   3,
			domain.TaskPriorityUrgent: 4,
		},

		PriorityTermWeight: 10,
		FocusTermWeight:    5,

		SessionHistoryLimit: 100,
	}
}

// priorityWeight returns the weight for the given priority, falling back
// to medium for unknown or absent values.
func (p *Params) priorityWeight(priority domain.TaskPriority) float64 {
	if w, ok := p.PriorityWeights[priority]; ok {
		return w
	}
	return p.PriorityWeights[domain.TaskPriorityMedium]
}
