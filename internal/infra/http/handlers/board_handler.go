package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/dental-crm/internal/infra/http/middleware"
	"github.com/xavierca1/dental-crm/internal/usecase"
)

type BoardHandler struct {
	BoardUC *usecase.BoardUseCase
}

func NewBoardHandler(boardUC *usecase.BoardUseCase) *BoardHandler {
	return &BoardHandler{BoardUC: boardUC}
}

// HandleGet (GET /board/{pipelineId}) renders the kanban columns of one
// pipeline for the current user.
func (h *BoardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	board, err := h.BoardUC.Build(r.Context(), actor, chi.URLParam(r, "pipelineId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
