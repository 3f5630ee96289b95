package eventbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sheltercms/internal/shared/logger"
)

// Event represents a generic event
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	Source() string
}

// Handler defines the event handler function type
type Handler func(ctx context.Context, event Event) error

// EventBusInterface defines the contract for event bus implementations
type EventBusInterface interface {
	Subscribe(eventType string, handler Handler)
	Publish(ctx context.Context, event Event) error
	PublishAndForget(ctx context.Context, event Event)
	Unsubscribe(eventType string)
	GetSubscriberCount(eventType string) int
}

// EventBus is an in-memory event bus. It carries intra-process notifications
// such as catalog refreshes after a section save or delete.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   logger.Logger
}

// NewEventBus creates a new event bus instance
func NewEventBus(log logger.Logger) *EventBus {
	if log == nil {
		log = &noopLogger{}
	}
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   log,
	}
}

// Subscribe adds a handler for a specific event type
func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
}

// Unsubscribe removes all handlers for an event type
func (eb *EventBus) Unsubscribe(eventType string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	delete(eb.handlers, eventType)
}

// Publish delivers an event synchronously to every subscribed handler.
// Handler errors are collected; the first one is returned.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	handlers := make([]Handler, len(eb.handlers[event.Type()]))
	copy(handlers, eb.handlers[event.Type()])
	eb.mu.RUnlock()

	var firstErr error
	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			eb.logger.Error("Event handler failed", "eventType", event.Type(), "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("handler for %s failed: %w", event.Type(), err)
			}
		}
	}
	return firstErr
}

// PublishAndForget delivers an event without surfacing handler errors.
// Used for best-effort notifications where the triggering operation already
// succeeded against the store.
func (eb *EventBus) PublishAndForget(ctx context.Context, event Event) {
	if err := eb.Publish(ctx, event); err != nil {
		eb.logger.Warn("Fire-and-forget event had failing handlers", "eventType", event.Type())
	}
}

// Close drops all subscriptions.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers = make(map[string][]Handler)
}

// GetSubscriberCount returns the number of handlers for an event type
func (eb *EventBus) GetSubscriberCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}

// BaseEvent is a simple Event implementation for publishers that do not need
// a dedicated type.
type BaseEvent struct {
	EventType   string
	EventData   interface{}
	EventTime   time.Time
	EventSource string
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Data() interface{}    { return e.EventData }
func (e BaseEvent) Timestamp() time.Time { return e.EventTime }
func (e BaseEvent) Source() string       { return e.EventSource }

// NewBaseEvent creates a BaseEvent stamped with the current time
func NewBaseEvent(eventType, source string, data interface{}) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventData:   data,
		EventTime:   time.Now(),
		EventSource: source,
	}
}

// noopLogger is used when no logger is provided
type noopLogger struct{}

func (n *noopLogger) Debug(args ...interface{})                       {}
func (n *noopLogger) Info(args ...interface{})                        {}
func (n *noopLogger) Warn(args ...interface{})                        {}
func (n *noopLogger) Error(args ...interface{})                       {}
func (n *noopLogger) Fatal(args ...interface{})                       {}
func (n *noopLogger) Debugf(format string, args ...interface{})       {}
func (n *noopLogger) Infof(format string, args ...interface{})        {}
func (n *noopLogger) Warnf(format string, args ...interface{})        {}
func (n *noopLogger) Errorf(format string, args ...interface{})       {}
func (n *noopLogger) Fatalf(format string, args ...interface{})       {}
func (n *noopLogger) WithFields(map[string]interface{}) logger.Logger { return n }
func (n *noopLogger) WithContext(context.Context) logger.Logger       { return n }
func (n *noopLogger) WithComponent(string) logger.Logger              { return n }
