package validators

import (
	"strings"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

type RegisterPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=100"`
	Phone     string `json:"phone" validate:"omitempty,digits,min=8,max=15"`
}

// Register checks the shape of a sign-up; email uniqueness is left to the
// auth service, which owns the user repository.
func Register(p RegisterPayload) (RegisterInput, error) {
	in := RegisterInput{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     NormalizeEmail(p.Email),
		Password:  p.Password,
		Phone:     strings.TrimSpace(p.Phone),
	}
	if err := check(in).Err(); err != nil {
		return RegisterInput{}, err
	}
	return in, nil
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(p LoginPayload) (LoginInput, error) {
	in := LoginInput{Email: NormalizeEmail(p.Email), Password: p.Password}
	if err := check(in).Err(); err != nil {
		return LoginInput{}, err
	}
	return in, nil
}

type ProfilePayload struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

// ProfileInput only carries the fields the caller sent.
type ProfileInput struct {
	FirstName *string `json:"firstName" validate:"omitnil,min=2,max=50"`
	LastName  *string `json:"lastName" validate:"omitnil,min=2,max=50"`
	Phone     *string `json:"phone" validate:"omitnil,digits,min=8,max=15"`
}

func Profile(p ProfilePayload) (ProfileInput, error) {
	in := ProfileInput{
		FirstName: trimPtr(p.FirstName),
		LastName:  trimPtr(p.LastName),
		Phone:     trimPtr(p.Phone),
	}
	if in.FirstName == nil && in.LastName == nil && in.Phone == nil {
		return ProfileInput{}, domain.NewValidationError("body", "Nothing to update")
	}
	// An empty phone clears it.
	probe := in
	if probe.Phone != nil && *probe.Phone == "" {
		probe.Phone = nil
	}
	if err := check(probe).Err(); err != nil {
		return ProfileInput{}, err
	}
	return in, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
