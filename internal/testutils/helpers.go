package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/platform/postgres"
)

// GenerateUniqueEmail returns an email address unlikely to collide with
// other tests running in parallel.
func GenerateUniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.New().String()[:8])
}

// MustCreateUser inserts a fresh user through the store layer and fails the
// test on error. bcrypt.MinCost keeps test hashing fast.
func MustCreateUser(t *testing.T, ctx context.Context, tx *sql.Tx) *domain.User {
	t.Helper()

	user, err := domain.NewUser(GenerateUniqueEmail("test"), "Test User", "password123")
	if err != nil {
		t.Fatalf("Failed to build test user: %v", err)
	}

	userStore := postgres.NewPostgresUserStore(tx, bcrypt.MinCost)
	if err := userStore.Create(ctx, user); err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}

	return user
}

// MustCreateTask inserts a pending task for the given user and fails the
// test on error.
func MustCreateTask(t *testing.T, ctx context.Context, tx *sql.Tx, userID uuid.UUID, title string) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(userID, title)
	if err != nil {
		t.Fatalf("Failed to build test task: %v", err)
	}

	taskStore := postgres.NewPostgresTaskStore(tx, nil)
	if err := taskStore.Create(ctx, task); err != nil {
		t.Fatalf("Failed to insert test task: %v", err)
	}

	return task
}
