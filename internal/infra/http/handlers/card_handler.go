package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/http/middleware"
	"github.com/xavierca1/dental-crm/internal/usecase"
)

type CardHandler struct {
	CreateUC *usecase.CreateCardUseCase
	UpdateUC *usecase.UpdateCardUseCase
	DeleteUC *usecase.DeleteCardUseCase
	MoveUC   *usecase.MoveCardUseCase
	ListUC   *usecase.ListCardsUseCase
	ReviewUC *usecase.ReviewRegistrationUseCase
}

func NewCardHandler(
	createUC *usecase.CreateCardUseCase,
	updateUC *usecase.UpdateCardUseCase,
	deleteUC *usecase.DeleteCardUseCase,
	moveUC *usecase.MoveCardUseCase,
	listUC *usecase.ListCardsUseCase,
	reviewUC *usecase.ReviewRegistrationUseCase,
) *CardHandler {
	return &CardHandler{
		CreateUC: createUC,
		UpdateUC: updateUC,
		DeleteUC: deleteUC,
		MoveUC:   moveUC,
		ListUC:   listUC,
		ReviewUC: reviewUC,
	}
}

// HandleList (GET /cards) accepts ?pipeline=, ?q=, ?sort=, ?dir= and any
// number of ?filter.<field>=<value> pairs.
func (h *CardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	q := usecase.CardQuery{
		Pipeline:  r.URL.Query().Get("pipeline"),
		Search:    r.URL.Query().Get("q"),
		SortField: r.URL.Query().Get("sort"),
		SortDir:   usecase.SortAsc,
	}
	if r.URL.Query().Get("dir") == "desc" {
		q.SortDir = usecase.SortDesc
	}
	for key, values := range r.URL.Query() {
		if field, ok := strings.CutPrefix(key, "filter."); ok && len(values) > 0 {
			q.Filters = append(q.Filters, usecase.FieldFilter{Field: field, Value: values[0]})
		}
	}

	cards, err := h.ListUC.Execute(r.Context(), actor, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *CardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	card, err := h.ListUC.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var input usecase.CreateCardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	card, err := h.CreateUC.Execute(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (h *CardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var patch entity.CardPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	card, err := h.UpdateUC.Execute(r.Context(), actor, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var input usecase.MoveCardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}
	if input.TargetStage == "" {
		writeError(w, usecase.NewValidationError("target_stage is required"))
		return
	}

	card, err := h.MoveUC.Execute(r.Context(), actor, chi.URLParam(r, "id"), input.TargetStage)
	if err != nil {
		if de, ok := err.(*usecase.DomainError); ok {
			middleware.RecordCardMoveRejected(de.Code)
		}
		writeError(w, err)
		return
	}
	middleware.RecordCardMove(card.Pipeline)
	writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if err := h.DeleteUC.Execute(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CardHandler) HandleReviewRegistration(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var input usecase.ReviewRegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.NewValidationError("invalid JSON: "+err.Error()))
		return
	}

	card, err := h.ReviewUC.Execute(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordRegistrationReview(string(card.RegistrationStatus))
	writeJSON(w, http.StatusOK, card)
}
