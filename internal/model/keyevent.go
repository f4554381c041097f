package model

import (
	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeOrderKey      EventType = "ORDER_KEY"
	EventTypeOrderCylinder EventType = "ORDER_CYLINDER"
	EventTypeRepair        EventType = "REPAIR"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeOrderKey, EventTypeOrderCylinder, EventTypeRepair:
		return true
	}

	return false
}

type EventStatus string

const (
	EventStatusRequested EventStatus = "REQUESTED"
	EventStatusOrdered   EventStatus = "ORDERED"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusRequested, EventStatusOrdered, EventStatusCompleted, EventStatusCancelled:
		return true
	}

	return false
}

// KeyEvent tracks work ordered against a key, such as ordering copies or a
// cylinder replacement. Status moves REQUESTED -> ORDERED -> COMPLETED, with
// cancellation allowed before completion.
type KeyEvent struct {
	Timestamps

	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	KeyID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	Key           *Key        `gorm:"foreignKey:KeyID"`
	EventType     EventType   `gorm:"type:varchar(20);not null"`
	Status        EventStatus `gorm:"type:varchar(20);not null"`
	WorkOrderCode *string     `gorm:"type:varchar(100)"`
}

func (KeyEvent) TableName() string {
	return "key_events"
}
