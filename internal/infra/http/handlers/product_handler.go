package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/http/middleware"
	"github.com/xavierca1/dental-crm/internal/infra/memory"
	"github.com/xavierca1/dental-crm/internal/permission"
	"github.com/xavierca1/dental-crm/internal/usecase"
)

type ProductHandler struct {
	Repo *memory.ProductRepository
}

func NewProductHandler(repo *memory.ProductRepository) *ProductHandler {
	return &ProductHandler{Repo: repo}
}

func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFromContext(r.Context()) == nil {
		writeError(w, usecase.NewPermissionDeniedError("authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, h.Repo.List())
}

type productRequest struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if !permission.CanConfigureSystem(actor) {
		writeError(w, usecase.NewPermissionDeniedError("only admins may manage the catalog"))
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	product, err := entity.NewProduct(req.Name, req.SKU, req.Price)
	if err != nil {
		writeError(w, usecase.NewValidationError(err.Error()))
		return
	}
	product.Description = req.Description

	if err := h.Repo.Create(product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}
