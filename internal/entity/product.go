package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog item used for quoting (bone barriers, membranes).
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProduct(name, sku string, price float64) (*Product, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if price < 0 {
		return nil, errors.New("price must not be negative")
	}
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		SKU:       sku,
		Price:     price,
		Active:    true,
		CreatedAt: time.Now(),
	}, nil
}
