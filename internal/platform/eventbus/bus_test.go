package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/philly/medium-blog/internal/platform/eventbus"
)

// mockLogger implements the logger.Logger interface for testing
type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, keysAndValues ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockLogger) getErrors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.errors))
	copy(result, m.errors)
	return result
}

func TestBusSubscribeAndPublish(t *testing.T) {
	logger := &mockLogger{}
	bus := eventbus.NewBus(logger)

	topic := eventbus.Topic("comments.submitted")

	var mu sync.Mutex
	calls := map[string]int{}

	bus.Subscribe(topic, func(ctx context.Context, event eventbus.Event) error {
		mu.Lock()
		defer mu.Unlock()
		calls["audit"]++
		if payload, ok := event.Payload.(string); !ok || payload != "p1" {
			t.Errorf("expected payload p1, got %v", event.Payload)
		}
		return nil
	})
	bus.Subscribe(topic, func(ctx context.Context, event eventbus.Event) error {
		mu.Lock()
		defer mu.Unlock()
		calls["metrics"]++
		return nil
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: topic, Payload: "p1"})
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls["audit"] != 1 || calls["metrics"] != 1 {
		t.Fatalf("expected each handler to run once, got %v", calls)
	}
}

func TestBusPublishWithNoSubscribers(t *testing.T) {
	logger := &mockLogger{}
	bus := eventbus.NewBus(logger)

	bus.Publish(context.Background(), eventbus.Event{Topic: "no.subscribers", Payload: "x"})
	bus.Wait()

	if errs := logger.getErrors(); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestBusPublishWithHandlerError(t *testing.T) {
	logger := &mockLogger{}
	bus := eventbus.NewBus(logger)

	topic := eventbus.Topic("pages.regenerated")
	bus.Subscribe(topic, func(ctx context.Context, event eventbus.Event) error {
		return errors.New("handler failed")
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: topic})
	bus.Wait()

	errs := logger.getErrors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error log, got %d", len(errs))
	}
	if errs[0] != "event handler failed" {
		t.Errorf("expected 'event handler failed', got %v", errs[0])
	}
}

func TestBusHandlersOutliveCanceledPublisher(t *testing.T) {
	bus := eventbus.NewBus(&mockLogger{})
	topic := eventbus.Topic("comments.submitted")

	var sawCanceled bool
	bus.Subscribe(topic, func(ctx context.Context, event eventbus.Event) error {
		sawCanceled = ctx.Err() != nil
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, eventbus.Event{Topic: topic})
	bus.Wait()

	if sawCanceled {
		t.Errorf("handler context should not inherit the publisher's cancellation")
	}
}
