package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu      sync.Mutex
	types   map[string]bool
	handled []Event
	err     error
}

func (h *recordingHandler) Handle(event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return h.types[eventType]
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore()

	require.NoError(t, store.AppendEvent("site1", NewEvent(ContractSubmittedEvent, "site1", nil)))
	require.NoError(t, store.AppendEvent("site1", NewEvent(ContractDecidedEvent, "site1", nil)))
	require.NoError(t, store.Publish(NewEvent(ChecklistSubmittedEvent, "site2", nil)))
	store.Wait()

	events, err := store.ReadEvents("site1", 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].Version())
	assert.Equal(t, 2, events[1].Version())

	events, err = store.ReadEvents("site1", 2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ContractDecidedEvent, events[0].Type())

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.ReadEvents("missing", 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryEventStore_DispatchesToSubscribers(t *testing.T) {
	store := NewInMemoryEventStore()
	contracts := &recordingHandler{types: map[string]bool{ContractSubmittedEvent: true}}
	failing := &recordingHandler{types: map[string]bool{ContractSubmittedEvent: true}, err: errors.New("boom")}

	require.NoError(t, store.Subscribe([]string{ContractSubmittedEvent}, contracts))
	require.NoError(t, store.Subscribe([]string{ContractSubmittedEvent}, failing))

	require.NoError(t, store.Publish(NewEvent(ContractSubmittedEvent, "site1", nil)))
	require.NoError(t, store.Publish(NewEvent(ChecklistSubmittedEvent, "site1", nil)))
	store.Wait()

	assert.Equal(t, 1, contracts.count())
	assert.Equal(t, 1, failing.count())

	require.NoError(t, store.Unsubscribe(contracts))
	require.NoError(t, store.Publish(NewEvent(ContractSubmittedEvent, "site1", nil)))
	store.Wait()

	assert.Equal(t, 1, contracts.count())
	assert.Equal(t, 2, failing.count())
}
