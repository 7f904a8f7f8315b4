package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":    "b3c1",
		"score": 72,
	}

	before := time.Now()
	evt := NewEvent(EventTypeRecomputed, EntityTypeHealth, payload)
	after := time.Now()

	assert.Equal(t, "health.recomputed", evt.Type)
	assert.Equal(t, EntityTypeHealth, evt.Entity)
	assert.Empty(t, evt.Kind)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
		entity   EntityType
	}{
		{"challenge generated", ChallengesGenerated(nil), "challenge.generated", EntityTypeChallenge},
		{"challenge completed", ChallengeCompleted(nil), "challenge.completed", EntityTypeChallenge},
		{"challenge expired", ChallengeExpired(nil), "challenge.expired", EntityTypeChallenge},
		{"progress updated", ProgressUpdated(nil), "progress.updated", EntityTypeProgress},
		{"health recomputed", HealthRecomputed(nil), "health.recomputed", EntityTypeHealth},
		{"bill due", BillDue(nil), "bill.due", EntityTypeBill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Type)
			assert.Equal(t, tt.entity, tt.event.Entity)
		})
	}
}

func TestRecordChanged_CarriesKind(t *testing.T) {
	evt := RecordChanged(EventTypeDeleted, domain.KindLoan, map[string]string{"id": "x"})

	assert.Equal(t, "record.deleted", evt.Type)
	assert.Equal(t, domain.KindLoan, evt.Kind)
}

func TestEvent_ToJSON(t *testing.T) {
	evt := RecordChanged(EventTypeCreated, domain.KindIncome, map[string]interface{}{"name": "Salary"})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "record.created", decoded["type"])
	assert.Equal(t, "record", decoded["entity"])
	assert.Equal(t, "incomes", decoded["kind"])
	assert.Equal(t, "Salary", decoded["payload"].(map[string]interface{})["name"])
	assert.NotEmpty(t, decoded["timestamp"])
}

func TestEvent_ToJSON_OmitsKindForNonRecordEvents(t *testing.T) {
	data, err := ProgressUpdated(map[string]int{"level": 2}).ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	_, hasKind := decoded["kind"]
	assert.False(t, hasKind)
}
