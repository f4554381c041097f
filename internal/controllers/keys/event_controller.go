package keys

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
)

// ListKeyEvents handles listing work items with optional filters on key,
// status and event type
func (c *APIController) ListKeyEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, ok := parsePagination(w, r)
	if !ok {
		return
	}

	keyID, ok := queryUUID(w, r, "keyId")
	if !ok {
		return
	}

	filter := manager.EventSearchFilter{
		KeyID:     keyID,
		Status:    model.EventStatus(r.URL.Query().Get("status")),
		EventType: model.EventType(r.URL.Query().Get("eventType")),
	}

	events, total, err := c.Manager.Events.ListEvents(ctx, filter, pagination)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.List(ctx, w, r, keysapi.KeyEventsToAPI(events), total, pagination)
}

// CreateKeyEvent handles opening a work item against a key
func (c *APIController) CreateKeyEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeBody[keysapi.CreateKeyEventRequest](w, r)
	if !ok {
		return
	}

	event, err := req.ToModel()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	created, err := c.Manager.Events.CreateEvent(ctx, event)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, keysapi.KeyEventToAPI(created))
}

// GetKeyEvent handles retrieving a work item by its ID
func (c *APIController) GetKeyEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	event, err := c.Manager.Events.GetEvent(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.KeyEventToAPI(event))
}

// TransitionKeyEvent handles moving a work item through its lifecycle.
// Only transitions permitted by the event state machine are accepted.
func (c *APIController) TransitionKeyEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody[keysapi.TransitionKeyEventRequest](w, r)
	if !ok {
		return
	}

	req, err := req.Sanitised()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	event, err := c.Manager.Events.TransitionEvent(ctx, id, req.Status, req.WorkOrderCode)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, keysapi.KeyEventToAPI(event))
}
