package dto

// Status mirrors the session state machine for consumers outside the module.
type Status string

const (
	StatusUnresolved      Status = "unresolved"
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type SignupInput struct {
	Email           string   `validate:"required,email"`
	Password        string   `validate:"required,min=6"`
	Name            string   `validate:"required"`
	Age             *int     `validate:"omitempty,gt=0,lt=120"`
	Height          *float64 `validate:"omitempty,gt=0"`
	Weight          *float64 `validate:"omitempty,gt=0"`
	Sport           string
	ExperienceLevel string `validate:"omitempty,oneof=beginner intermediate advanced"`
	Goal            string
}

type UpdateProfileInput struct {
	Name            *string
	Age             *int `validate:"omitempty,gt=0,lt=120"`
	Height          *float64
	Weight          *float64
	Sport           *string
	ExperienceLevel *string `validate:"omitempty,oneof=beginner intermediate advanced"`
	Goal            *string
	ProfilePicture  *string
}

type ChangePasswordInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=6"`
}

type ProfileOutput struct {
	ID              int64
	Email           string
	Name            string
	Age             *int
	Height          *float64
	Weight          *float64
	Sport           string
	ExperienceLevel string
	Goal            string
	ProfilePicture  string
}

type StatusOutput struct {
	Status Status
	Email  string
	Name   string
}
