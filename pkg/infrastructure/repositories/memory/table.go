package memory

import (
	"fmt"
	"sync"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// table keeps records by id and remembers insertion order so listings are stable
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	kind  string
}

func newTable[T any](kind string) *table[T] {
	return &table[T]{rows: make(map[string]T), kind: kind}
}

func (t *table[T]) put(id string, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", t.kind, id, entities.ErrNotFound)
	}
	return row, nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %s: %w", t.kind, id, entities.ErrNotFound)
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for _, id := range t.order {
		if row := t.rows[id]; keep(row) {
			out = append(out, row)
		}
	}
	return out
}
