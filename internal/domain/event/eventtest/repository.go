// Package eventtest provides an in-memory event.Repository for tests.
package eventtest

import (
	"context"
	"sort"
	"sync"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
)

// MemoryRepository keeps events in a slice and counts every call, so tests
// can assert that a code path never touched the store.
type MemoryRepository struct {
	mu     sync.Mutex
	events []event.Event
	nextID uint
	Calls  int
	// Err, when set, is returned by every method.
	Err error
}

func NewMemoryRepository(seed ...event.Event) *MemoryRepository {
	r := &MemoryRepository{nextID: 1}
	for _, e := range seed {
		e := e
		_ = r.Create(context.Background(), &e)
	}
	r.Calls = 0
	return r
}

func (r *MemoryRepository) enter() error {
	r.Calls++
	return r.Err
}

func (r *MemoryRepository) Create(_ context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	e.ID = r.nextID
	r.nextID++
	r.events = append(r.events, *e)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	for i := range r.events {
		if r.events[i].ID == e.ID {
			r.events[i] = *e
		}
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	kept := r.events[:0]
	for _, e := range r.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	r.events = kept
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id uint) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	for _, e := range r.events {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, apperror.NewNotFound("event", id)
}

func (r *MemoryRepository) filter(keep func(event.Event) bool) []event.Event {
	var out []event.Event
	for _, e := range r.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (r *MemoryRepository) ListByDate(_ context.Context, date string) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	return r.filter(func(e event.Event) bool { return e.Date == date }), nil
}

func (r *MemoryRepository) ListRange(_ context.Context, startDate, endDate string) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	return r.filter(func(e event.Event) bool { return e.Date >= startDate && e.Date <= endDate }), nil
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	return r.filter(func(event.Event) bool { return true }), nil
}

func (r *MemoryRepository) FindDuplicate(_ context.Context, key event.Key) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	for _, e := range r.events {
		if e.Key() == key {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) DateBounds(_ context.Context) (string, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return "", "", err
	}
	all := r.filter(func(event.Event) bool { return true })
	if len(all) == 0 {
		return "", "", nil
	}
	return all[0].Date, all[len(all)-1].Date, nil
}

// Snapshot returns a copy of the stored events in insertion order.
func (r *MemoryRepository) Snapshot() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}
