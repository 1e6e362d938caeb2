package validators

import (
	"strings"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

func parseStatus[S ~string](p StatusPayload, parse func(string) (S, error)) (S, error) {
	var zero S
	if strings.TrimSpace(p.Status) == "" {
		return zero, domain.NewValidationError("status", "Status is required")
	}
	s, err := parse(p.Status)
	if err != nil {
		return zero, domain.NewValidationError("status", err.Error())
	}
	return s, nil
}

type ApprovePayload struct {
	Approved *bool `json:"approved"`
}

type PublishPayload struct {
	Published *bool `json:"published"`
}

func Approve(p ApprovePayload) (bool, error) {
	if p.Approved == nil {
		return false, domain.NewValidationError("approved", "Approved must be a boolean")
	}
	return *p.Approved, nil
}

func Publish(p PublishPayload) (bool, error) {
	if p.Published == nil {
		return false, domain.NewValidationError("published", "Published must be a boolean")
	}
	return *p.Published, nil
}
