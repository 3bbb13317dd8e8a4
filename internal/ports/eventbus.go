package ports

import (
	"github.com/naddyballia/Raaz-Music/internal/domain"
)

// EventBus decouples event producers (services) from consumers (presenter,
// logging). Services publish domain events; any number of subscribers
// receive them.
//
// Implementations must be safe for concurrent publish and subscribe.
type EventBus interface {
	// Publish delivers an event to every subscriber of its type.
	// Handlers should return quickly; long work belongs in a goroutine.
	Publish(event domain.Event)

	// Subscribe registers a handler for one event type and returns an ID
	// for later removal.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a subscription. Unknown IDs are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler for every event type. Useful for
	// logging and debugging.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether anything listens for the given type.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts the bus down; further publishes are dropped.
	Close() error
}
