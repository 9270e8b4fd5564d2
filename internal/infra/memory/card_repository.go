// Package memory holds the in-process stores. The card repository is the
// authoritative collection; callers always get copies, so a reader never
// observes a card mid-update.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/dental-crm/internal/entity"
)

var nowFunc = time.Now

// StageValidator is the slice of the registry the repository needs to keep
// the (pipeline, status) invariant.
type StageValidator interface {
	HasStage(pipelineID, stageID string) bool
	FirstStage(pipelineID string) (entity.Stage, error)
}

type CardRepository struct {
	mu       sync.RWMutex
	cards    map[string]*entity.Card
	order    []string // insertion order; intra-column order derives from it
	registry StageValidator
}

func NewCardRepository(registry StageValidator) *CardRepository {
	return &CardRepository{
		cards:    make(map[string]*entity.Card),
		registry: registry,
	}
}

func (r *CardRepository) Create(ctx context.Context, c *entity.Card) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		first, err := r.registry.FirstStage(c.Pipeline)
		if err != nil {
			return entity.ErrUnknownStage
		}
		c.Status = first.ID
	}
	if !r.registry.HasStage(c.Pipeline, c.Status) {
		return entity.ErrUnknownStage
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *c
	r.cards[c.ID] = &stored
	r.order = append(r.order, c.ID)
	return nil
}

func (r *CardRepository) FindByID(ctx context.Context, id string) (*entity.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cards[id]
	if !ok {
		return nil, entity.ErrCardNotFound
	}
	out := *c
	return &out, nil
}

// Update merges the patch atomically under the write lock. The merge is
// last-write-wins per field set; two concurrent patches to the same card do
// not get field-level conflict detection. Known limitation of the
// single-writer-per-card interactive model.
func (r *CardRepository) Update(ctx context.Context, id string, patch entity.CardPatch) (*entity.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cards[id]
	if !ok {
		return nil, entity.ErrCardNotFound
	}

	candidate := *c
	patch.Apply(&candidate)
	if !r.registry.HasStage(candidate.Pipeline, candidate.Status) {
		return nil, entity.ErrUnknownStage
	}

	*c = candidate
	out := *c
	return &out, nil
}

// Move is a status-only transition inside the card's current pipeline.
func (r *CardRepository) Move(ctx context.Context, id, targetStage string) (*entity.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cards[id]
	if !ok {
		return nil, entity.ErrCardNotFound
	}
	if !r.registry.HasStage(c.Pipeline, targetStage) {
		return nil, entity.ErrUnknownStage
	}
	if c.Status != targetStage {
		c.Status = targetStage
		c.UpdatedAt = nowFunc()
	}
	out := *c
	return &out, nil
}

func (r *CardRepository) SetRegistration(ctx context.Context, id string, status entity.RegistrationStatus, notes string) (*entity.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cards[id]
	if !ok {
		return nil, entity.ErrCardNotFound
	}
	now := nowFunc()
	c.RegistrationStatus = status
	c.RegistrationNotes = notes
	c.RegistrationDate = &now
	c.UpdatedAt = now
	out := *c
	return &out, nil
}

// List returns copies in insertion order.
func (r *CardRepository) List(ctx context.Context) ([]entity.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Card, 0, len(r.order))
	for _, id := range r.order {
		if c, ok := r.cards[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[id]; !ok {
		return entity.ErrCardNotFound
	}
	delete(r.cards, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *CardRepository) CountByStage(ctx context.Context, pipelineID, stageID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, c := range r.cards {
		if c.Pipeline == pipelineID && c.Status == stageID {
			count++
		}
	}
	return count, nil
}
