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

// WorkspaceLookup resolves the workspace that belongs to an Auth0 subject
type WorkspaceLookup interface {
	GetWorkspaceByAuth0ID(ctx context.Context, auth0ID string) (int32, error)
}

// TokenValidator authenticates websocket handshakes. Browsers cannot set an
// Authorization header on the upgrade request, so the JWT arrives as ?token=.
type TokenValidator struct {
	validator *validator.Validator
	lookup    WorkspaceLookup
}

func NewTokenValidator(domain, audience string, lookup WorkspaceLookup) (*TokenValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	v, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &TokenValidator{validator: v, lookup: lookup}, nil
}

// ValidateToken verifies the JWT and returns the caller's workspace id
func (v *TokenValidator) ValidateToken(ctx context.Context, token string) (int32, error) {
	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return 0, ErrInvalidToken
	}

	workspaceID, err := v.lookup.GetWorkspaceByAuth0ID(ctx, validated.RegisteredClaims.Subject)
	if err != nil {
		return 0, ErrWorkspaceNotFound
	}
	return workspaceID, nil
}
