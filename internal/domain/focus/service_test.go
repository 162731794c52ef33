package focus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
)

// stubSessionReader returns a fixed history and records the requested limit.
type stubSessionReader struct {
	samples        []SessionSample
	err            error
	requestedLimit int
}

func (r *stubSessionReader) ListCompleted(
	_ context.Context,
	_ uuid.UUID,
	limit int,
) ([]SessionSample, error) {
	r.requestedLimit = limit
	return r.samples, r.err
}

func TestNewServiceRequiresSessionReader(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil); err == nil {
		t.Error("expected error for nil session reader")
	}
}

func TestServicePatternsUsesHistoryLimit(t *testing.T) {
	t.Parallel()

	reader := &stubSessionReader{}
	svc, err := NewService(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Patterns(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reader.requestedLimit != 100 {
		t.Errorf("expected history limit 100, got %d", reader.requestedLimit)
	}
}

func TestServicePatternsEmptyHistoryReturnsPriors(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubSessionReader{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patterns, err := svc.Patterns(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := PatternVector{Morning: 0.7, Afternoon: 0.5, Evening: 0.3}
	if patterns != expected {
		t.Errorf("expected prior vector %+v, got %+v", expected, patterns)
	}
}

func TestServicePatternsPropagatesReaderError(t *testing.T) {
	t.Parallel()

	readerErr := errors.New("connection lost")
	svc, err := NewService(&stubSessionReader{err: readerErr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Patterns(context.Background(), uuid.New()); !errors.Is(err, readerErr) {
		t.Errorf("expected wrapped reader error, got %v", err)
	}
}

func TestServiceRankEmptyTaskListSkipsHistoryRead(t *testing.T) {
	t.Parallel()

	reader := &stubSessionReader{err: errors.New("should not be called")}
	svc, err := NewService(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ranked, err := svc.Rank(context.Background(), uuid.New(), nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranked) != 0 {
		t.Errorf("expected empty result, got %d tasks", len(ranked))
	}
}

func TestServiceRankOrdersByScore(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubSessionReader{
		samples: []SessionSample{sampleAt(9, 0.9)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	low := taskWith(domain.TaskPriorityLow, 0.9)
	urgent := taskWith(domain.TaskPriorityUrgent, 0.5)

	ranked, err := svc.Rank(
		context.Background(),
		uuid.New(),
		[]*domain.Task{low, urgent},
		morningClock(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranked[0].ID != urgent.ID {
		t.Errorf("expected urgent task ranked first, got priority %s", ranked[0].Priority)
	}
}
