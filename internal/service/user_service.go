package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/platform/authprovider"
	"github.com/focusflow/focusflow-api/internal/redact"
	"github.com/focusflow/focusflow-api/internal/service/auth"
	"github.com/focusflow/focusflow-api/internal/store"
)

// UserService provides user account operations: registration, credential
// verification, and identity provider session exchange.
type UserService interface {
	// Register creates a new user account. Returns ErrEmailExists if the
	// email is already taken, or domain validation errors for bad input.
	Register(ctx context.Context, email, name, password string) (*domain.User, error)

	// Authenticate verifies the given credentials and returns the user.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// ExchangeProviderSession resolves an identity provider session ID into
	// a local user, creating the account on first sign-in (upsert by email).
	ExchangeProviderSession(ctx context.Context, sessionID string) (*domain.User, error)
}

// UserServiceError wraps errors from the user service with context.
type UserServiceError struct {
	// Operation is the operation that failed (e.g., "register", "authenticate")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// newUserServiceError wraps an error, passing known sentinels through directly.
func newUserServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrEmailExists),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserNotFound):
		return err
	case errors.Is(err, store.ErrEmailExists):
		return ErrEmailExists
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	}

	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	provider  *authprovider.Client
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// The provider client may be nil, which disables session exchange.
// It returns an error if any other required dependency is nil.
func NewUserService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	provider *authprovider.Client,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, &UserServiceError{
			Operation: "create_service",
			Message:   "userStore cannot be nil",
		}
	}
	if verifier == nil {
		return nil, &UserServiceError{
			Operation: "create_service",
			Message:   "verifier cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		provider:  provider,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// Register creates a new user account from email, name, and password.
func (s *userServiceImpl) Register(
	ctx context.Context,
	email, name, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(email, name, password)
	if err != nil {
		s.logger.Warn("user registration rejected by validation",
			"error", err.Error())
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			"error", redact.Error(err),
			"user_id", user.ID)
		return nil, newUserServiceError("register", "failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies the given login credentials.
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same outcome as a wrong password so callers cannot probe
			// for registered emails.
			return nil, ErrInvalidCredentials
		}
		return nil, newUserServiceError("authenticate", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch during login", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by their unique ID.
func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, newUserServiceError("get_user", "failed to get user", err)
	}
	return user, nil
}

// ExchangeProviderSession exchanges a provider session ID for a local user,
// creating the account on first sign-in. Provider-registered accounts get a
// random password; they authenticate through the provider, not by password.
func (s *userServiceImpl) ExchangeProviderSession(
	ctx context.Context,
	sessionID string,
) (*domain.User, error) {
	if s.provider == nil {
		return nil, &UserServiceError{
			Operation: "exchange_session",
			Message:   "no identity provider configured",
		}
	}

	data, err := s.provider.ExchangeSession(ctx, sessionID)
	if err != nil {
		return nil, newUserServiceError("exchange_session", "provider exchange failed", err)
	}

	user, err := s.userStore.GetByEmail(ctx, data.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, newUserServiceError("exchange_session", "failed to look up user", err)
	}

	name := data.Name
	if name == "" {
		name = data.Email
	}

	user, err = domain.NewUser(data.Email, name, uuid.New().String())
	if err != nil {
		return nil, newUserServiceError("exchange_session", "failed to build user", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		// A concurrent first sign-in may have created the account already
		if errors.Is(err, store.ErrEmailExists) {
			return s.userStore.GetByEmail(ctx, data.Email)
		}
		return nil, newUserServiceError("exchange_session", "failed to create user", err)
	}

	s.logger.Info("user created from provider session", "user_id", user.ID)
	return user, nil
}
