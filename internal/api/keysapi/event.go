package keysapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/sanitise"
)

// KeyEvent is the wire form of a work item opened against a key.
type KeyEvent struct {
	ID            uuid.UUID         `json:"id"`
	KeyID         uuid.UUID         `json:"keyId"`
	Key           *Key              `json:"key,omitempty"`
	EventType     model.EventType   `json:"eventType"`
	Status        model.EventStatus `json:"status"`
	WorkOrderCode *string           `json:"workOrderCode,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func KeyEventToAPI(event *model.KeyEvent) KeyEvent {
	out := KeyEvent{
		ID:            event.ID,
		KeyID:         event.KeyID,
		EventType:     event.EventType,
		Status:        event.Status,
		WorkOrderCode: event.WorkOrderCode,
		CreatedAt:     event.CreatedAt,
		UpdatedAt:     event.UpdatedAt,
	}

	if event.Key != nil {
		key := KeyToAPI(event.Key)
		out.Key = &key
	}

	return out
}

func KeyEventsToAPI(events []*model.KeyEvent) []KeyEvent {
	out := make([]KeyEvent, len(events))
	for i, event := range events {
		out[i] = KeyEventToAPI(event)
	}

	return out
}

type CreateKeyEventRequest struct {
	KeyID         uuid.UUID       `json:"keyId"`
	EventType     model.EventType `json:"eventType"`
	WorkOrderCode *string         `json:"workOrderCode"`
}

func (r *CreateKeyEventRequest) ToModel() (*model.KeyEvent, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return nil, err
	}

	return &model.KeyEvent{
		KeyID:         r.KeyID,
		EventType:     r.EventType,
		WorkOrderCode: r.WorkOrderCode,
	}, nil
}

type TransitionKeyEventRequest struct {
	Status        model.EventStatus `json:"status"`
	WorkOrderCode *string           `json:"workOrderCode"`
}

func (r *TransitionKeyEventRequest) Sanitised() (*TransitionKeyEventRequest, error) {
	return sanitise.Stringlikes(r)
}
