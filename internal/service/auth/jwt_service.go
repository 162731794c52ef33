package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for issuing and validating the JWT tokens
// that authenticate API requests.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given user.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken parses and validates an access token string.
	// Returns the claims if the token is valid, or an error if validation
	// fails (expired, invalid signature, wrong token type).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the given
	// user. Refresh tokens have a longer lifetime and are only accepted by
	// the refresh endpoint to mint new access tokens.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken parses and validates a refresh token string.
	// Returns the claims if the refresh token is valid, or an error if
	// validation fails (expired, invalid signature, wrong token type).
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the custom claim set carried by both token types. It extends
// the standard registered claims with the fields the API needs.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType distinguishes "access" from "refresh" so a refresh token
	// can never be used to authenticate a normal request.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
