package context

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrGetRequestID = errors.New("no request id in context")
	ErrGetActor     = errors.New("no actor in context")
)

type key string

const (
	requestID = key("requestID")
	actor     = key("actor")
)

// WithNewRequestID stores a freshly generated request id in the context.
func WithNewRequestID(ctx context.Context) context.Context {
	return WithRequestID(ctx, uuid.NewString())
}

// WithRequestID stores the given request id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestID, id)
}

func GetRequestID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(requestID).(string)
	if !ok || id == "" {
		return "", ErrGetRequestID
	}

	return id, nil
}

// WithActor stores the authenticated subject, used for activity logging.
func WithActor(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, actor, subject)
}

func GetActor(ctx context.Context) (string, error) {
	subject, ok := ctx.Value(actor).(string)
	if !ok || subject == "" {
		return "", ErrGetActor
	}

	return subject, nil
}
