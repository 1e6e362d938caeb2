package contact

import (
	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/notify"
)

type Service struct {
	repo     domain.ContactRepository
	notifier notify.Notifier
	audit    audit.Recorder
}

func NewService(
	repo domain.ContactRepository,
	notifier notify.Notifier,
	audit audit.Recorder,
) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}
