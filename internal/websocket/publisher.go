package websocket

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventPublisher pushes derived-state changes to a user's live connections
type EventPublisher interface {
	Publish(userID uuid.UUID, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher. Users with no open connection are
// skipped before the event is serialized.
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	if h.ClientCount(userID) == 0 {
		log.Debug().
			Str("user_id", userID.String()).
			Str("event_type", event.Type).
			Msg("No live connections, event dropped")
		return
	}
	h.Broadcast(userID, event)
}
