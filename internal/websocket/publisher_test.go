package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHub_Publish(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	client := newMockClient("client-1", userID)
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish(userID, ChallengeCompleted(map[string]interface{}{"title": "Pay down Card"}))

	waitForMessages(t, client, 1)
	assert.Len(t, client.GetMessages(), 1)
}

func TestHub_Publish_OtherUserOnly(t *testing.T) {
	hub := NewHub()
	connected := newMockClient("client-1", uuid.New())
	hub.Register(connected)

	assert.NotPanics(t, func() {
		hub.Publish(uuid.New(), ProgressUpdated(nil))
	})
	assert.Empty(t, connected.GetMessages())
}
