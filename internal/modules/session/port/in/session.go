package in

import (
	"context"

	"endure/internal/modules/session/dto"
)

type Usecase interface {
	// Initialize resolves the persisted token into a session. It never
	// returns an auth failure: an invalid token silently demotes to
	// unauthenticated.
	Initialize(ctx context.Context) error
	Login(ctx context.Context, input dto.LoginInput) (dto.ProfileOutput, error)
	Signup(ctx context.Context, input dto.SignupInput) (dto.ProfileOutput, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.ProfileOutput, error)
	ChangePassword(ctx context.Context, input dto.ChangePasswordInput) error
	Status(ctx context.Context) (dto.StatusOutput, error)
	// Profile returns the held user; apperrors.ErrNotAuthenticated when
	// there is no session.
	Profile(ctx context.Context) (dto.ProfileOutput, error)
	Subscribe(fn func(dto.Status)) func()
}
