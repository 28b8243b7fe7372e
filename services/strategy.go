package services

import (
	"context"

	"backend/models"

	"golang.org/x/oauth2"
)

// Strategy is one OAuth provider: it can report whether it holds real
// credentials, start an authorization-code flow, and turn a callback
// code into a canonical profile.
type Strategy interface {
	Name() string
	Configured() bool
	AuthCodeURL(state string) string
	Authenticate(ctx context.Context, code string) (*models.CanonicalProfile, *oauth2.Token, error)
}
