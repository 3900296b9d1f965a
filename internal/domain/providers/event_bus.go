package providers

import (
	"context"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
)

// EventBus publishes and consumes search analytics events
type EventBus interface {
	Publish(ctx context.Context, channel string, event *entities.SearchEvent) error
	Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchEvent, error)
	Close() error
}
