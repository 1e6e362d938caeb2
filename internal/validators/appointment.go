package validators

import (
	"strings"

	"github.com/BruksfildServices01/site-backend/internal/domain/appointment"
)

type AppointmentPayload struct {
	ClientName  string `json:"client_name" form:"client_name"`
	ClientEmail string `json:"client_email" form:"client_email"`
	Date        string `json:"date" form:"date"`
	Time        string `json:"time" form:"time"`
	Service     string `json:"service" form:"service"`
	Message     string `json:"message" form:"message"`
}

type AppointmentInput struct {
	ClientName  string `json:"client_name" validate:"required,min=2,max=100"`
	ClientEmail string `json:"client_email" validate:"required,email,max=255"`
	Date        string `json:"date" validate:"required,date_ymd"`
	Time        string `json:"time" validate:"required,clock"`
	Service     string `json:"service" validate:"required,max=255"`
	// Message becomes the companion contact body when present.
	Message string `json:"message" validate:"omitempty,min=10,max=5000"`
}

func Appointment(p AppointmentPayload) (AppointmentInput, error) {
	in := AppointmentInput{
		ClientName:  strings.TrimSpace(p.ClientName),
		ClientEmail: NormalizeEmail(p.ClientEmail),
		Date:        strings.TrimSpace(p.Date),
		Time:        strings.TrimSpace(p.Time),
		Service:     strings.TrimSpace(p.Service),
		Message:     strings.TrimSpace(p.Message),
	}
	if err := check(in).Err(); err != nil {
		return AppointmentInput{}, err
	}
	in.Time, _ = ParseClock(in.Time)
	return in, nil
}

func AppointmentStatus(p StatusPayload) (appointment.Status, error) {
	return parseStatus(p, appointment.Lifecycle.Parse)
}
