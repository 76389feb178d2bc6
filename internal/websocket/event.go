package websocket

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventType is the change that happened to an entity
type EventType string

const (
	EventTypeCreated   EventType = "created"
	EventTypeUpdated   EventType = "updated"
	EventTypeDeleted   EventType = "deleted"
	EventTypeActivated EventType = "activated"
)

// EntityType is the kind of entity an event is about
type EntityType string

const (
	EntityTypeDailyRecord  EntityType = "daily_record"
	EntityTypeExpense      EntityType = "expense"
	EntityTypeExtraEarning EntityType = "extra_earning"
	EntityTypeCarConfig    EntityType = "car_config"
)

// entityTypes lists the entities clients may subscribe to
var entityTypes = []EntityType{
	EntityTypeDailyRecord,
	EntityTypeExpense,
	EntityTypeExtraEarning,
	EntityTypeCarConfig,
}

// ParseEntities parses a comma separated subscription list. An empty list
// subscribes to every entity.
func ParseEntities(list string) ([]EntityType, error) {
	var entities []EntityType
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		known := false
		for _, e := range entityTypes {
			if EntityType(name) == e {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown entity %q", name)
		}
		entities = append(entities, EntityType(name))
	}
	return entities, nil
}

// Event is the message pushed to clients. Clients refetch their analyses on
// any event, the payload only spares them a round trip for the entity itself.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`   // e.g. "daily_record.created"
	Entity    EntityType  `json:"entity"` // e.g. "daily_record"
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates an event for the given change
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// DailyRecordCreated creates a daily_record.created event
func DailyRecordCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeDailyRecord, payload)
}

// DailyRecordUpdated creates a daily_record.updated event
func DailyRecordUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeDailyRecord, payload)
}

// DailyRecordDeleted creates a daily_record.deleted event
func DailyRecordDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeDailyRecord, payload)
}

// ExpenseCreated creates an expense.created event
func ExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeExpense, payload)
}

// ExpenseDeleted creates an expense.deleted event
func ExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeExpense, payload)
}

// ExtraEarningCreated creates an extra_earning.created event
func ExtraEarningCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeExtraEarning, payload)
}

// ExtraEarningDeleted creates an extra_earning.deleted event
func ExtraEarningDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeExtraEarning, payload)
}

// CarConfigCreated creates a car_config.created event
func CarConfigCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCarConfig, payload)
}

// CarConfigUpdated creates a car_config.updated event
func CarConfigUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCarConfig, payload)
}

// CarConfigDeleted creates a car_config.deleted event
func CarConfigDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCarConfig, payload)
}

// CarConfigActivated creates a car_config.activated event
func CarConfigActivated(payload interface{}) Event {
	return NewEvent(EventTypeActivated, EntityTypeCarConfig, payload)
}
