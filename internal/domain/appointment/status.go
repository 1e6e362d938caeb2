package appointment

import (
	"github.com/BruksfildServices01/site-backend/internal/domain/status"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var Lifecycle = status.New(StatusPending, StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted).
	WithAliases(map[string]Status{
		"en_attente": StatusPending,
		"confirmé":   StatusConfirmed,
		"confirme":   StatusConfirmed,
		"annulé":     StatusCancelled,
		"annule":     StatusCancelled,
		"terminé":    StatusCompleted,
		"termine":    StatusCompleted,
	})

// ===============================
// Guards
// ===============================

// CanDelete refuses to drop a confirmed booking; it has to be moved out of
// confirmed first.
func CanDelete(current Status) error {
	if current == StatusConfirmed {
		return httperr.ErrBusiness("appointment_confirmed", "Confirmed appointments cannot be deleted")
	}
	return nil
}

func InitialStatus() Status {
	return Lifecycle.Initial()
}

// NotifiesClient reports whether moving into s warrants an email to the client.
func NotifiesClient(s Status) bool {
	return s == StatusConfirmed || s == StatusCancelled
}
