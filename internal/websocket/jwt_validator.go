package websocket

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrWorkspaceNotFound = errors.New("workspace not found")
)

// WorkspaceLookup resolves the workspace of an Auth0 subject
type WorkspaceLookup interface {
	GetWorkspaceByAuth0ID(auth0ID string) (workspaceID int32, err error)
}

// ClaimsValidator validates a raw bearer token. *validator.Validator satisfies it.
type ClaimsValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// Auth0JWTValidator authenticates WebSocket connections, which pass the
// access token as a query parameter since browsers cannot set headers on
// the upgrade request
type Auth0JWTValidator struct {
	validator       ClaimsValidator
	workspaceLookup WorkspaceLookup
}

// NewAuth0JWTValidator builds a validator backed by the tenant's JWKS
func NewAuth0JWTValidator(domain, audience string, workspaceLookup WorkspaceLookup) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return NewJWTValidator(jwtValidator, workspaceLookup), nil
}

// NewJWTValidator wraps an existing claims validator
func NewJWTValidator(v ClaimsValidator, workspaceLookup WorkspaceLookup) *Auth0JWTValidator {
	return &Auth0JWTValidator{validator: v, workspaceLookup: workspaceLookup}
}

// ValidateToken validates the token and returns the caller's workspace
func (v *Auth0JWTValidator) ValidateToken(ctx context.Context, token string) (int32, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return 0, ErrInvalidToken
	}

	workspaceID, err := v.workspaceLookup.GetWorkspaceByAuth0ID(validated.RegisteredClaims.Subject)
	if err != nil {
		return 0, ErrWorkspaceNotFound
	}
	return workspaceID, nil
}
