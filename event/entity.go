package event

import (
	"github.com/fundwit/go-commons/types"
)

const (
	EventCategoryStateChanged   = "STATE_CHANGED"
	EventCategoryUnitProduced   = "UNIT_PRODUCED"
	EventCategoryOrderCompleted = "ORDER_COMPLETED"
	EventCategoryFailed         = "FAILED"
)

type EventCategory string

type Event struct {
	SourceType string `json:"sourceType"`
	SourceDesc string `json:"sourceDesc"`

	EventCategory     EventCategory     `json:"eventCategory"`
	UpdatedProperties []UpdatedProperty `json:"updatedProperties"`
	Message           string            `json:"message,omitempty"`
}

type EventRecord struct {
	Event

	Timestamp types.Timestamp `json:"timestamp"`
}

type UpdatedProperty struct {
	PropertyName string `json:"propertyName"`

	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

func NewEventRecord(sourceType, sourceDesc string, category EventCategory, props ...UpdatedProperty) *EventRecord {
	return &EventRecord{
		Event: Event{
			SourceType:        sourceType,
			SourceDesc:        sourceDesc,
			EventCategory:     category,
			UpdatedProperties: props,
		},
		Timestamp: types.CurrentTimestamp(),
	}
}

// HasProperty reports whether the event changed the named property.
func (r *EventRecord) HasProperty(name string) bool {
	for _, p := range r.UpdatedProperties {
		if p.PropertyName == name {
			return true
		}
	}
	return false
}
