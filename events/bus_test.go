package events_test

import (
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/events"
	"github.com/stretchr/testify/require"
)

func TestBus_AddRemoveListener_NoSubsequentDelivery(t *testing.T) {
	bus := events.NewBus()
	var received int
	handle := bus.AddListener(func(events.Event) { received++ })

	bus.Emit(events.Event{Kind: events.TreeAdded})
	require.Equal(t, 1, received)

	bus.RemoveListener(handle)
	bus.Emit(events.Event{Kind: events.TreeAdded})
	require.Equal(t, 1, received, "listener must receive no events after removal")
}

func TestBus_PanicIsolatedPerListener(t *testing.T) {
	bus := events.NewBus()
	var secondCalled bool
	var panicked []any
	bus.PanicHandler = func(_ events.ListenerHandle, recovered any) {
		panicked = append(panicked, recovered)
	}

	bus.AddListener(func(events.Event) { panic("boom") })
	bus.AddListener(func(events.Event) { secondCalled = true })

	bus.Emit(events.Event{Kind: events.TreeRemoved})

	require.True(t, secondCalled, "a panicking listener must not block later listeners")
	require.Len(t, panicked, 1)
}

func TestBus_ProgramOrderWithinOneGoroutine(t *testing.T) {
	bus := events.NewBus()
	var order []events.Kind
	bus.AddListener(func(ev events.Event) { order = append(order, ev.Kind) })

	bus.Emit(events.Event{Kind: events.TreeAdded})
	bus.Emit(events.Event{Kind: events.TreeSubdivided})
	bus.Emit(events.Event{Kind: events.TreeRemoved})

	require.Equal(t, []events.Kind{events.TreeAdded, events.TreeSubdivided, events.TreeRemoved}, order)
}
