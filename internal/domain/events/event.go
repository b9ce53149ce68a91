package events

import (
	"encoding/json"
	"time"
)

// TopicEventsChanged is the broker topic every event write is announced on.
const TopicEventsChanged = "events.changed"

// Change actions
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// ChangeEvent tells subscribers that stored events changed and derived
// views (statistics, layouts) must be recomputed.
type ChangeEvent struct {
	Action    string    `json:"action"`
	EventID   uint      `json:"event_id,omitempty"`
	Date      string    `json:"date,omitempty"`
	Count     int       `json:"count,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeEvent(action string, eventID uint, date string) ChangeEvent {
	return ChangeEvent{
		Action:    action,
		EventID:   eventID,
		Date:      date,
		Timestamp: time.Now().UTC(),
	}
}

func (c ChangeEvent) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func UnmarshalChangeEvent(data []byte) (ChangeEvent, error) {
	var c ChangeEvent
	err := json.Unmarshal(data, &c)
	return c, err
}
