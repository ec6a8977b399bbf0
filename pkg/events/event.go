package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "generation.persisted").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewGenerationStageEvent marks one pipeline stage transition for a topic.
func NewGenerationStageEvent(topicName, stage string, details map[string]interface{}) Event {
	data := map[string]interface{}{
		"topic_name": topicName,
		"stage":      stage,
	}
	for k, v := range details {
		data[k] = v
	}
	return BaseEvent{
		Type:       "generation." + stage,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// NewCostAlertEvent reports a spend threshold breach.
func NewCostAlertEvent(kind, model string, amount, threshold float64) Event {
	return BaseEvent{
		Type: "cost.alert",
		Data: map[string]interface{}{
			"kind":      kind,
			"model":     model,
			"amount":    amount,
			"threshold": threshold,
		},
		OccurredAt: time.Now(),
	}
}

// NewQuotaDeniedEvent reports a generation request rejected by quota.
func NewQuotaDeniedEvent(userId, tier string) Event {
	return BaseEvent{
		Type: "quota.denied",
		Data: map[string]interface{}{
			"user_id": userId,
			"tier":    tier,
		},
		OccurredAt: time.Now(),
	}
}
