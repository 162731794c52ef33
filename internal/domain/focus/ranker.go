package focus

import (
	"math"
	"sort"
	"time"

	"github.com/focusflow/focusflow-api/internal/domain"
)

// rankingScore computes the combined score for one task:
// the priority weight as the dominant term plus a focus-match term that
// rewards tasks whose declared concentration requirement is close to the
// user's productivity in the current day part.
func rankingScore(task *domain.Task, currentFocus float64, params *Params) float64 {
	focusScore := task.FocusScore
	if focusScore < 0 || focusScore > 1 {
		focusScore = domain.DefaultFocusScore
	}

	focusMatch := 1 - math.Abs(focusScore-currentFocus)

	return params.priorityWeight(task.Priority)*params.PriorityTermWeight +
		focusMatch*params.FocusTermWeight
}

// rankTasks orders task snapshots by descending ranking score against the
// given pattern vector at the given wall-clock time. The input slice is
// never mutated; the result is a fresh slice holding the same tasks. The
// sort is stable, so exact score ties preserve the input order.
//
// The current day part comes from the server's local clock, matching the
// behavior users already see; callers that want a user-local ranking pass
// a time already shifted into the user's zone.
func rankTasks(tasks []*domain.Task, patterns PatternVector, now time.Time, params *Params) []*domain.Task {
	currentFocus := patterns.Score(DayPartForHour(now.Hour()))

	ranked := make([]*domain.Task, len(tasks))
	copy(ranked, tasks)

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankingScore(ranked[i], currentFocus, params) >
			rankingScore(ranked[j], currentFocus, params)
	})

	return ranked
}
