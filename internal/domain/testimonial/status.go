package testimonial

import (
	"github.com/BruksfildServices01/site-backend/internal/domain/status"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Lifecycle = status.New(StatusPending, StatusPending, StatusApproved, StatusRejected).
	WithAliases(map[string]Status{
		"en_attente": StatusPending,
		"approuvé":   StatusApproved,
		"approuve":   StatusApproved,
		"rejeté":     StatusRejected,
		"rejete":     StatusRejected,
	})

func InitialStatus() Status {
	return Lifecycle.Initial()
}

// Approve maps the boolean moderation decision onto the status domain.
// Applying the same decision twice leaves the record unchanged.
func Approve(t *models.Testimonial, approved bool) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	next, err := Lifecycle.Transition(Status(t.Status), target)
	if err != nil {
		return err
	}
	t.Status = string(next)
	return nil
}

func Publish(t *models.Testimonial, published bool) {
	t.Published = published
}

// IsPublic reports whether anonymous visitors may see t.
func IsPublic(t *models.Testimonial) bool {
	return Status(t.Status) == StatusApproved && t.Published
}
