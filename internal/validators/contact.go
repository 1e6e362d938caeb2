package validators

import (
	"strings"

	"github.com/BruksfildServices01/site-backend/internal/domain/contact"
)

type ContactPayload struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Service string `json:"service" form:"service"`
	Message string `json:"message" form:"message"`
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Service string `json:"service" validate:"required,max=255"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

func Contact(p ContactPayload) (ContactInput, error) {
	in := ContactInput{
		Name:    strings.TrimSpace(p.Name),
		Email:   NormalizeEmail(p.Email),
		Service: strings.TrimSpace(p.Service),
		Message: strings.TrimSpace(p.Message),
	}
	if err := check(in).Err(); err != nil {
		return ContactInput{}, err
	}
	return in, nil
}

type StatusPayload struct {
	Status string `json:"status"`
}

func ContactStatus(p StatusPayload) (contact.Status, error) {
	return parseStatus(p, contact.Lifecycle.Parse)
}
