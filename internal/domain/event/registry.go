package event

import (
	"context"
	"sync"
)

// Handler consumes one event per matching active subscription.
type Handler interface {
	Handle(ctx context.Context, e Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, e Event) error

func (f HandlerFunc) Handle(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Registry maps handler-type identifiers to handler implementations.
// Populated once at startup; the last registration for a type wins.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

func (r *Registry) Register(handlerType string, h Handler) {
	r.mu.Lock()
	r.handlers[handlerType] = h
	r.mu.Unlock()
}

func (r *Registry) Get(handlerType string) (Handler, bool) {
	r.mu.RLock()
	h, ok := r.handlers[handlerType]
	r.mu.RUnlock()
	return h, ok
}
