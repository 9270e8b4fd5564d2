package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/http/middleware"
	"github.com/xavierca1/dental-crm/internal/infra/memory"
	"github.com/xavierca1/dental-crm/internal/usecase"
)

// EventHandler is plain calendar CRUD; events carry no pipeline invariants.
type EventHandler struct {
	Repo *memory.EventRepository
}

func NewEventHandler(repo *memory.EventRepository) *EventHandler {
	return &EventHandler{Repo: repo}
}

func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFromContext(r.Context()) == nil {
		writeError(w, usecase.NewPermissionDeniedError("authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, h.Repo.List())
}

type eventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Contact     string `json:"contact,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		writeError(w, usecase.NewPermissionDeniedError("authentication required"))
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	event, err := entity.NewEvent(req.Title, req.Date, req.Time, req.Type, actor.ID)
	if err != nil {
		writeError(w, usecase.NewValidationError(err.Error()))
		return
	}
	event.Contact = req.Contact
	event.Location = req.Location
	event.Description = req.Description

	if err := h.Repo.Create(event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		writeError(w, usecase.NewPermissionDeniedError("authentication required"))
		return
	}

	event, err := h.Repo.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, usecase.NewNotFoundError("event not found"))
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}
	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Date != "" {
		event.Date = req.Date
	}
	if req.Time != "" {
		event.Time = req.Time
	}
	if req.Type != "" {
		event.Type = req.Type
	}
	if req.Contact != "" {
		event.Contact = req.Contact
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if req.Description != "" {
		event.Description = req.Description
	}

	if err := h.Repo.Update(event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		writeError(w, usecase.NewPermissionDeniedError("authentication required"))
		return
	}
	if err := h.Repo.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, usecase.NewNotFoundError("event not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
