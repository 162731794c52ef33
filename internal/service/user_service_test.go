package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/platform/authprovider"
	"github.com/focusflow/focusflow-api/internal/service"
	"github.com/focusflow/focusflow-api/internal/store"
)

// fakeVerifier accepts exactly one hash/password pair.
type fakeVerifier struct {
	hash     string
	password string
}

func (f *fakeVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword == f.hash && password == f.password {
		return nil
	}
	return errors.New("password mismatch")
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	var created *domain.User
	users := &fakeUserStore{
		createFn: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	svc, err := service.NewUserService(users, &fakeVerifier{}, nil, nil)
	require.NoError(t, err)

	user, err := svc.Register(context.Background(), "alice@example.com", "Alice", "hunter2secret")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := &fakeUserStore{
		createFn: func(_ context.Context, _ *domain.User) error {
			return store.ErrEmailExists
		},
	}
	svc, err := service.NewUserService(users, &fakeVerifier{}, nil, nil)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "Alice", "hunter2secret")
	assert.ErrorIs(t, err, service.ErrEmailExists)
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()

	svc, err := service.NewUserService(&fakeUserStore{}, &fakeVerifier{}, nil, nil)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "not-an-email", "Alice", "hunter2secret")
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "Alice", "")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	stored := &domain.User{
		ID:             uuid.New(),
		Email:          "alice@example.com",
		Name:           "Alice",
		HashedPassword: "stored-hash",
	}
	users := &fakeUserStore{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, store.ErrUserNotFound
		},
	}
	verifier := &fakeVerifier{hash: "stored-hash", password: "correct-password"}
	svc, err := service.NewUserService(users, verifier, nil, nil)
	require.NoError(t, err)

	t.Run("valid_credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "alice@example.com", "correct-password")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "correct-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials,
			"unknown email must be indistinguishable from a wrong password")
	})
}

func TestExchangeProviderSession(t *testing.T) {
	t.Parallel()

	providerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-ID") != "valid-session" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"bob@example.com","name":"Bob"}`))
	}))
	t.Cleanup(providerSrv.Close)

	t.Run("creates_user_on_first_sign_in", func(t *testing.T) {
		var created *domain.User
		users := &fakeUserStore{
			createFn: func(_ context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		provider := authprovider.NewClient(providerSrv.URL, nil)
		svc, err := service.NewUserService(users, &fakeVerifier{}, provider, nil)
		require.NoError(t, err)

		user, err := svc.ExchangeProviderSession(context.Background(), "valid-session")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "bob@example.com", user.Email)
		assert.Equal(t, "Bob", user.Name)
	})

	t.Run("returns_existing_user", func(t *testing.T) {
		existing := &domain.User{ID: uuid.New(), Email: "bob@example.com", Name: "Bob"}
		users := &fakeUserStore{
			getByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
				return existing, nil
			},
			createFn: func(_ context.Context, _ *domain.User) error {
				t.Fatal("existing user must not be re-created")
				return nil
			},
		}
		provider := authprovider.NewClient(providerSrv.URL, nil)
		svc, err := service.NewUserService(users, &fakeVerifier{}, provider, nil)
		require.NoError(t, err)

		user, err := svc.ExchangeProviderSession(context.Background(), "valid-session")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
	})

	t.Run("invalid_session", func(t *testing.T) {
		provider := authprovider.NewClient(providerSrv.URL, nil)
		svc, err := service.NewUserService(&fakeUserStore{}, &fakeVerifier{}, provider, nil)
		require.NoError(t, err)

		_, err = svc.ExchangeProviderSession(context.Background(), "bogus")
		require.Error(t, err)
		assert.ErrorIs(t, err, authprovider.ErrInvalidSession)
	})

	t.Run("no_provider_configured", func(t *testing.T) {
		svc, err := service.NewUserService(&fakeUserStore{}, &fakeVerifier{}, nil, nil)
		require.NoError(t, err)

		_, err = svc.ExchangeProviderSession(context.Background(), "valid-session")
		assert.Error(t, err)
	})
}
