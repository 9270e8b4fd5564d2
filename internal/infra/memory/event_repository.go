package memory

import (
	"sync"

	"github.com/xavierca1/dental-crm/internal/entity"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*entity.Event
	order  []string
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*entity.Event)}
}

func (r *EventRepository) Create(e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *e
	r.events[e.ID] = &stored
	r.order = append(r.order, e.ID)
	return nil
}

func (r *EventRepository) FindByID(id string) (*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	out := *e
	return &out, nil
}

func (r *EventRepository) List() []entity.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Event, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.events[id]; ok {
			out = append(out, *e)
		}
	}
	return out
}

func (r *EventRepository) Update(e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return entity.ErrEventNotFound
	}
	stored := *e
	r.events[e.ID] = &stored
	return nil
}

func (r *EventRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	delete(r.events, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
