package in

import (
	"context"

	"endure/internal/modules/session/dto"
	sessionin "endure/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Initialize(ctx context.Context) error {
	return h.usecase.Initialize(ctx)
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (dto.ProfileOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Signup(ctx context.Context, input dto.SignupInput) (dto.ProfileOutput, error) {
	return h.usecase.Signup(ctx, input)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.ProfileOutput, error) {
	return h.usecase.UpdateProfile(ctx, input)
}

func (h CLIHandler) ChangePassword(ctx context.Context, current, next string) error {
	return h.usecase.ChangePassword(ctx, dto.ChangePasswordInput{CurrentPassword: current, NewPassword: next})
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Profile(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.Profile(ctx)
}
