package out

import (
	"context"

	"endure/internal/modules/session/domain"
	sessionout "endure/internal/modules/session/port/out"
	"endure/internal/platform/rest"
)

// HTTPAuthAPI talks to the backend's auth and profile endpoints.
type HTTPAuthAPI struct {
	client *rest.Client
}

func NewHTTPAuthAPI(client *rest.Client) sessionout.AuthAPI {
	return &HTTPAuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (a *HTTPAuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	if err := a.client.Post(ctx, "/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (a *HTTPAuthAPI) Signup(ctx context.Context, signup domain.Signup) (domain.Profile, error) {
	// The created-profile response is decoded best-effort; the automatic
	// login that follows fetches the authoritative record from /me.
	var out domain.Profile
	if err := a.client.Post(ctx, "/signup", signup, &out); err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

func (a *HTTPAuthAPI) Profile(ctx context.Context) (domain.Profile, error) {
	var out domain.Profile
	if err := a.client.Get(ctx, "/me", &out); err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

func (a *HTTPAuthAPI) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.Profile, error) {
	var out domain.Profile
	if err := a.client.Put(ctx, "/me", update, &out); err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

func (a *HTTPAuthAPI) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return a.client.Post(ctx, "/change-password", changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}
