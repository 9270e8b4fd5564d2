package memory

import (
	"sync"

	"github.com/xavierca1/dental-crm/internal/entity"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	order    []string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*entity.Product)}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *p
	r.products[p.ID] = &stored
	r.order = append(r.order, p.ID)
	return nil
}

func (r *ProductRepository) FindByID(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, entity.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (r *ProductRepository) List() []entity.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Product, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}
