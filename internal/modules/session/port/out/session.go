package out

import (
	"context"

	"endure/internal/modules/session/domain"
)

// TokenStore persists the auth token under one fixed location. Absence of a
// stored token is the sole signal for "logged out" at startup.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// AuthAPI is the backend's authentication and profile surface.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, signup domain.Signup) (domain.Profile, error)
	Profile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.Profile, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}
