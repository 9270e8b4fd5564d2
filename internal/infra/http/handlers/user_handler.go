package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/http/middleware"
	"github.com/xavierca1/dental-crm/internal/permission"
	"github.com/xavierca1/dental-crm/internal/usecase"
)

type UserHandler struct {
	Users entity.UserStoreInterface
}

func NewUserHandler(users entity.UserStoreInterface) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if !permission.CanViewAllUsers(actor) {
		writeError(w, usecase.NewPermissionDeniedError("no access to the user directory"))
		return
	}
	writeJSON(w, http.StatusOK, h.Users.List())
}

type createUserRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	Pipelines []string `json:"pipelines"`
}

func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if !permission.CanCreateUser(actor) {
		writeError(w, usecase.NewPermissionDeniedError("only admins may create users"))
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		writeError(w, usecase.NewValidationError(err.Error()))
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, usecase.NewValidationError("name and email are required"))
		return
	}

	u := entity.NewUser(req.Name, req.Email, role, req.Pipelines)
	if err := h.Users.Create(u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

type updateUserRequest struct {
	Name      *string   `json:"name,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Role      *string   `json:"role,omitempty"`
	Pipelines *[]string `json:"pipelines,omitempty"`
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	targetID := chi.URLParam(r, "id")
	if !permission.CanEditUser(actor, targetID) {
		writeError(w, usecase.NewPermissionDeniedError("no edit access to this user"))
		return
	}

	target, err := h.Users.FindByID(targetID)
	if err != nil {
		writeError(w, usecase.NewNotFoundError("user not found"))
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	// Role and pipeline entitlements are admin-only; users may edit their
	// own profile fields.
	if (req.Role != nil || req.Pipelines != nil) && !permission.IsAdmin(actor) {
		writeError(w, usecase.NewPermissionDeniedError("only admins may change roles or pipeline access"))
		return
	}

	if req.Name != nil {
		target.Name = *req.Name
	}
	if req.Email != nil {
		target.Email = *req.Email
	}
	if req.Role != nil {
		role, err := entity.ParseRole(*req.Role)
		if err != nil {
			writeError(w, usecase.NewValidationError(err.Error()))
			return
		}
		target.Role = role
	}
	if req.Pipelines != nil {
		target.Pipelines = *req.Pipelines
	}

	if err := h.Users.Update(target); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, target)
}
