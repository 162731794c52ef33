package focus

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
)

func taskWith(priority domain.TaskPriority, focusScore float64) *domain.Task {
	return &domain.Task{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Title:      "task",
		Priority:   priority,
		Type:       domain.TaskTypeShallow,
		Status:     domain.TaskStatusPending,
		FocusScore: focusScore,
	}
}

// morningClock returns a time whose local hour falls in the morning bucket,
// so tests pair predictably with PatternVector.Morning.
func morningClock() time.Time {
	return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func TestRankingScoreWorkedScenario(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	urgent := taskWith(domain.TaskPriorityUrgent, 0.5)
	low := taskWith(domain.TaskPriorityLow, 0.9)

	// current_focus = 0.5: urgent scores 4*10 + 1*5 = 45,
	// low scores 1*10 + (1-0.4)*5 = 13.
	if got := rankingScore(urgent, 0.5, params); math.Abs(got-45) > 1e-9 {
		t.Errorf("expected urgent task score 45, got %v", got)
	}
	if got := rankingScore(low, 0.5, params); math.Abs(got-13) > 1e-9 {
		t.Errorf("expected low task score 13, got %v", got)
	}
}

func TestRankingScoreExactFocusMatch(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// Feeding the estimator's own output back as the task's focus score
	// must yield a full focus-match term with no floating-point drift.
	patterns := estimatePatterns([]SessionSample{sampleAt(9, 0.73)}, params)
	task := taskWith(domain.TaskPriorityMedium, patterns.Morning)

	got := rankingScore(task, patterns.Morning, params)
	expected := params.PriorityWeights[domain.TaskPriorityMedium]*params.PriorityTermWeight +
		params.FocusTermWeight

	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected full focus match score %v, got %v", expected, got)
	}
}

func TestRankTasksPriorityDominates(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// The urgent task's weight lead (>= 30) always beats the maximum
	// focus-match delta (5), whatever the current focus is.
	for _, currentFocus := range []float64{0, 0.25, 0.5, 0.75, 1} {
		patterns := PatternVector{Morning: currentFocus, Afternoon: currentFocus, Evening: currentFocus}

		low := taskWith(domain.TaskPriorityLow, 0.5)
		urgent := taskWith(domain.TaskPriorityUrgent, 0.5)

		ranked := rankTasks([]*domain.Task{low, urgent}, patterns, morningClock(), params)

		if ranked[0].ID != urgent.ID {
			t.Errorf("current focus %v: expected urgent task first, got priority %s",
				currentFocus, ranked[0].Priority)
		}
	}
}

func TestRankTasksFocusMatchBreaksEqualPriority(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	patterns := PatternVector{Morning: 0.8, Afternoon: 0.5, Evening: 0.3}

	far := taskWith(domain.TaskPriorityMedium, 0.2)
	near := taskWith(domain.TaskPriorityMedium, 0.75)

	ranked := rankTasks([]*domain.Task{far, near}, patterns, morningClock(), params)

	if ranked[0].ID != near.ID {
		t.Errorf("expected task with focus score 0.75 ahead of 0.2 at current focus 0.8")
	}
}

func TestRankTasksIsPermutation(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	patterns := PatternVector{Morning: 0.7, Afternoon: 0.5, Evening: 0.3}

	tasks := []*domain.Task{
		taskWith(domain.TaskPriorityLow, 0.1),
		taskWith(domain.TaskPriorityUrgent, 0.9),
		taskWith(domain.TaskPriorityMedium, 0.5),
		taskWith(domain.TaskPriorityHigh, 0.3),
	}

	ranked := rankTasks(tasks, patterns, morningClock(), params)

	if len(ranked) != len(tasks) {
		t.Fatalf("expected %d tasks, got %d", len(tasks), len(ranked))
	}

	seen := make(map[uuid.UUID]bool, len(ranked))
	for _, task := range ranked {
		if seen[task.ID] {
			t.Errorf("task %s duplicated in ranking", task.ID)
		}
		seen[task.ID] = true
	}
	for _, task := range tasks {
		if !seen[task.ID] {
			t.Errorf("task %s missing from ranking", task.ID)
		}
	}
}

func TestRankTasksDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	patterns := PatternVector{Morning: 0.7, Afternoon: 0.5, Evening: 0.3}

	first := taskWith(domain.TaskPriorityLow, 0.1)
	second := taskWith(domain.TaskPriorityUrgent, 0.9)
	tasks := []*domain.Task{first, second}

	rankTasks(tasks, patterns, morningClock(), params)

	if tasks[0] != first || tasks[1] != second {
		t.Error("input slice order was mutated by ranking")
	}
}

func TestRankTasksEmptyInput(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	ranked := rankTasks(nil, PatternVector{}, morningClock(), params)

	if len(ranked) != 0 {
		t.Errorf("expected empty result for empty input, got %d tasks", len(ranked))
	}
}

func TestRankTasksStableTieBreak(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	patterns := PatternVector{Morning: 0.5, Afternoon: 0.5, Evening: 0.5}

	// Identical priority and focus score produce exact ties; the stable
	// sort must preserve input order among them.
	a := taskWith(domain.TaskPriorityMedium, 0.5)
	b := taskWith(domain.TaskPriorityMedium, 0.5)
	c := taskWith(domain.TaskPriorityMedium, 0.5)

	ranked := rankTasks([]*domain.Task{a, b, c}, patterns, morningClock(), params)

	if ranked[0].ID != a.ID || ranked[1].ID != b.ID || ranked[2].ID != c.ID {
		t.Error("exact ties did not preserve input order")
	}
}

func TestRankingScoreFallsBackForInvalidFocusScore(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	invalid := taskWith(domain.TaskPriorityMedium, 1.7)
	neutral := taskWith(domain.TaskPriorityMedium, domain.DefaultFocusScore)

	if got, want := rankingScore(invalid, 0.5, params), rankingScore(neutral, 0.5, params); got != want {
		t.Errorf("expected out-of-range focus score to score as neutral: got %v, want %v", got, want)
	}
}
