package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"endure/internal/modules/session/domain"
	"endure/internal/modules/session/dto"
	sessionin "endure/internal/modules/session/port/in"
	sessionout "endure/internal/modules/session/port/out"
	"endure/internal/modules/session/service"
	apperrors "endure/internal/platform/errors"
)

type Interactor struct {
	store    *service.Store
	api      sessionout.AuthAPI
	tokens   sessionout.TokenStore
	validate *validator.Validate
	log      *slog.Logger
}

func NewInteractor(store *service.Store, api sessionout.AuthAPI, tokens sessionout.TokenStore, log *slog.Logger) sessionin.Usecase {
	return &Interactor{
		store:    store,
		api:      api,
		tokens:   tokens,
		validate: validator.New(),
		log:      log,
	}
}

// Initialize resolves the persisted token on process start. No token means
// unauthenticated immediately, with no profile fetch. A token that the
// server rejects for any reason is treated as expired: it is cleared and
// the session demotes silently.
func (i *Interactor) Initialize(ctx context.Context) error {
	token, err := i.tokens.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoToken) {
			i.store.SetUnauthenticated()
			return nil
		}
		i.store.SetUnauthenticated()
		return err
	}

	i.store.SetToken(token)
	user, err := i.api.Profile(ctx)
	if err != nil {
		i.log.Warn("stored token rejected, clearing", "err", err)
		_ = i.tokens.Clear(ctx)
		i.store.SetUnauthenticated()
		return nil
	}
	i.store.SetAuthenticated(user)
	return nil
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.ProfileOutput, error) {
	if err := i.validate.Struct(input); err != nil {
		return dto.ProfileOutput{}, &apperrors.ValidationError{Detail: err.Error()}
	}

	i.store.SetAuthenticating()
	token, err := i.api.Login(ctx, input.Email, input.Password)
	if err != nil {
		i.store.SetUnauthenticated()
		return dto.ProfileOutput{}, err
	}

	if err := i.tokens.Save(ctx, token); err != nil {
		i.store.SetUnauthenticated()
		return dto.ProfileOutput{}, err
	}
	i.store.SetToken(token)

	user, err := i.api.Profile(ctx)
	if err != nil {
		// No partial session: the token is dropped with the failure.
		_ = i.tokens.Clear(ctx)
		i.store.SetUnauthenticated()
		return dto.ProfileOutput{}, err
	}
	i.store.SetAuthenticated(user)
	return profileOutput(user), nil
}

// Signup creates the account and then performs the same steps as Login with
// the submitted credentials; a fresh signup ends authenticated without a
// second explicit login from the user.
func (i *Interactor) Signup(ctx context.Context, input dto.SignupInput) (dto.ProfileOutput, error) {
	if err := i.validate.Struct(input); err != nil {
		return dto.ProfileOutput{}, &apperrors.ValidationError{Detail: err.Error()}
	}

	_, err := i.api.Signup(ctx, domain.Signup{
		Email:           input.Email,
		Password:        input.Password,
		Name:            input.Name,
		Age:             input.Age,
		Height:          input.Height,
		Weight:          input.Weight,
		Sport:           input.Sport,
		ExperienceLevel: input.ExperienceLevel,
		Goal:            input.Goal,
	})
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return i.Login(ctx, dto.LoginInput{Email: input.Email, Password: input.Password})
}

// Logout clears the persisted token and the in-memory session synchronously.
// Calling it while already unauthenticated is a no-op.
func (i *Interactor) Logout(ctx context.Context) error {
	if err := i.tokens.Clear(ctx); err != nil {
		i.log.Warn("clear token on logout", "err", err)
	}
	i.store.SetUnauthenticated()
	return nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.ProfileOutput, error) {
	if i.store.Status() != domain.StatusAuthenticated {
		return dto.ProfileOutput{}, apperrors.ErrNotAuthenticated
	}
	if err := i.validate.Struct(input); err != nil {
		return dto.ProfileOutput{}, &apperrors.ValidationError{Detail: err.Error()}
	}

	user, err := i.api.UpdateProfile(ctx, domain.ProfileUpdate{
		Name:            input.Name,
		Age:             input.Age,
		Height:          input.Height,
		Weight:          input.Weight,
		Sport:           input.Sport,
		ExperienceLevel: input.ExperienceLevel,
		Goal:            input.Goal,
		ProfilePicture:  input.ProfilePicture,
	})
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	// The server response is authoritative; never merge the partial locally.
	i.store.ReplaceUser(user)
	return profileOutput(user), nil
}

func (i *Interactor) ChangePassword(ctx context.Context, input dto.ChangePasswordInput) error {
	if i.store.Status() != domain.StatusAuthenticated {
		return apperrors.ErrNotAuthenticated
	}
	if err := i.validate.Struct(input); err != nil {
		return &apperrors.ValidationError{Detail: err.Error()}
	}
	return i.api.ChangePassword(ctx, input.CurrentPassword, input.NewPassword)
}

func (i *Interactor) Status(_ context.Context) (dto.StatusOutput, error) {
	out := dto.StatusOutput{Status: statusDTO(i.store.Status())}
	if user, ok := i.store.User(); ok {
		out.Email = user.Email
		out.Name = user.Name
	}
	return out, nil
}

func (i *Interactor) Profile(_ context.Context) (dto.ProfileOutput, error) {
	user, ok := i.store.User()
	if !ok {
		return dto.ProfileOutput{}, apperrors.ErrNotAuthenticated
	}
	return profileOutput(user), nil
}

func (i *Interactor) Subscribe(fn func(dto.Status)) func() {
	return i.store.Subscribe(func(status domain.Status) {
		fn(statusDTO(status))
	})
}

func statusDTO(status domain.Status) dto.Status {
	switch status {
	case domain.StatusUnauthenticated:
		return dto.StatusUnauthenticated
	case domain.StatusAuthenticating:
		return dto.StatusAuthenticating
	case domain.StatusAuthenticated:
		return dto.StatusAuthenticated
	}
	return dto.StatusUnresolved
}

func profileOutput(user domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Age:             user.Age,
		Height:          user.Height,
		Weight:          user.Weight,
		Sport:           user.Sport,
		ExperienceLevel: user.ExperienceLevel,
		Goal:            user.Goal,
		ProfilePicture:  user.ProfilePicture,
	}
}
