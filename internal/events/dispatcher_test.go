package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	// Arrange
	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventCustomerCreated, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	// Act
	err := d.Publish(context.Background(), Event{ID: "ev-1", Type: EventCustomerCreated})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ev-1" {
		t.Fatalf("got %+v", got)
	}
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()
	called := false
	d.Subscribe(EventUserCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventInteractionRecorded})

	if called {
		t.Fatal("handler invoked for a type it never subscribed to")
	}
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()
	secondRan := false
	d.Subscribe(EventInteractionCommented, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventInteractionCommented, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventInteractionCommented}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !secondRan {
		t.Fatal("second handler skipped after first errored")
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	if err := d.Publish(context.Background(), Event{Type: EventUserCreated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
