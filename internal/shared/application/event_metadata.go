package application

import (
	"github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/google/uuid"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata creates metadata for the events of one command.
// actor names the surface that issued it, such as "cli" or "mcp".
func NewEventMetadata(actor string) domain.EventMetadata {
	return domain.EventMetadata{CorrelationID: uuid.New(), Actor: actor}
}

// ApplyEventMetadata sets metadata on every event that accepts it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}
