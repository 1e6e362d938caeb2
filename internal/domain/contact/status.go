package contact

import "github.com/BruksfildServices01/site-backend/internal/domain/status"

type Status string

const (
	StatusNew       Status = "new"
	StatusProcessed Status = "processed"
	StatusClosed    Status = "closed"
)

var Lifecycle = status.New(StatusNew, StatusNew, StatusProcessed, StatusClosed).
	WithAliases(map[string]Status{
		"nouveau": StatusNew,
		"traité":  StatusProcessed,
		"traite":  StatusProcessed,
		"fermé":   StatusClosed,
		"ferme":   StatusClosed,
	})

func InitialStatus() Status {
	return Lifecycle.Initial()
}
