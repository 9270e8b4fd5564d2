package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/http/middleware"
	"github.com/xavierca1/dental-crm/internal/permission"
	"github.com/xavierca1/dental-crm/internal/registry"
	"github.com/xavierca1/dental-crm/internal/usecase"
)

type PipelineHandler struct {
	Registry   *registry.Registry
	SettingsUC *usecase.PipelineSettingsUseCase
}

func NewPipelineHandler(reg *registry.Registry, settingsUC *usecase.PipelineSettingsUseCase) *PipelineHandler {
	return &PipelineHandler{Registry: reg, SettingsUC: settingsUC}
}

// HandleList (GET /pipelines) returns only the pipelines the caller may
// open, with their full stage sets.
func (h *PipelineHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		writeError(w, usecase.NewPermissionDeniedError("authentication required"))
		return
	}

	all := h.Registry.Pipelines()
	visible := make([]entity.Pipeline, 0, len(all))
	for _, p := range all {
		if permission.CanViewPipeline(actor, p.ID) {
			visible = append(visible, p)
		}
	}
	writeJSON(w, http.StatusOK, visible)
}

func (h *PipelineHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var p entity.Pipeline
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	if err := h.SettingsUC.AddPipeline(actor, p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PipelineHandler) HandleAddStage(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var s entity.Stage
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	if err := h.SettingsUC.AddStage(actor, chi.URLParam(r, "id"), s); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *PipelineHandler) HandleRenameStage(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var body struct {
		Name  string `json:"name"`
		Color string `json:"color,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	err := h.SettingsUC.RenameStage(actor, chi.URLParam(r, "id"), chi.URLParam(r, "stageId"), body.Name, body.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PipelineHandler) HandleRemoveStage(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	err := h.SettingsUC.RemoveStage(r.Context(), actor, chi.URLParam(r, "id"), chi.URLParam(r, "stageId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PipelineHandler) HandleRemovePipeline(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if err := h.SettingsUC.RemovePipeline(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
