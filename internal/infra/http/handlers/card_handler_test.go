package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/http/middleware"
	"github.com/xavierca1/dental-crm/internal/infra/memory"
	"github.com/xavierca1/dental-crm/internal/registry"
	"github.com/xavierca1/dental-crm/internal/usecase"
)

func newTestServer(t *testing.T) (http.Handler, *memory.CardRepository) {
	t.Helper()

	reg := registry.NewDefault()
	repo := memory.NewCardRepository(reg)

	users := memory.NewUserStore()
	require.NoError(t, users.Create(&entity.User{ID: "a1", Name: "Admin", Role: entity.RoleAdmin}))
	require.NoError(t, users.Create(&entity.User{ID: "m1", Name: "Gestor", Role: entity.RoleManager, Pipelines: []string{"hunting"}}))
	require.NoError(t, users.Create(&entity.User{ID: "u1", Name: "Vendedor", Role: entity.RoleUser, Pipelines: []string{"hunting"}}))

	cardHandler := NewCardHandler(
		usecase.NewCreateCardUseCase(repo, reg),
		usecase.NewUpdateCardUseCase(repo, reg),
		usecase.NewDeleteCardUseCase(repo),
		usecase.NewMoveCardUseCase(repo, reg, nil),
		usecase.NewListCardsUseCase(repo),
		usecase.NewReviewRegistrationUseCase(repo, nil),
	)

	r := chi.NewRouter()
	r.Use(middleware.CurrentUser(users))
	r.Route("/cards", func(r chi.Router) {
		r.Get("/", cardHandler.HandleList)
		r.Post("/", cardHandler.HandleCreate)
		r.Get("/{id}", cardHandler.HandleGet)
		r.Put("/{id}", cardHandler.HandleUpdate)
		r.Delete("/{id}", cardHandler.HandleDelete)
		r.Post("/{id}/move", cardHandler.HandleMove)
		r.Post("/{id}/registration", cardHandler.HandleReviewRegistration)
	})
	return r, repo
}

func seedHandlerCard(t *testing.T, repo *memory.CardRepository, id, pipeline, status, responsible string) {
	t.Helper()
	c := &entity.Card{ID: id, Pipeline: pipeline, Status: status, Responsible: responsible,
		DentistName: "Dr. " + id, RegistrationStatus: entity.RegistrationPending}
	require.NoError(t, repo.Create(context.Background(), c))
}

func doRequest(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListCardsPerRole(t *testing.T) {
	h, repo := newTestServer(t)
	seedHandlerCard(t, repo, "1", "hunting", "backlog", "u1")
	seedHandlerCard(t, repo, "2", "hunting", "avancado", "u2")

	t.Run("admin sees everything", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/cards", "a1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var cards []entity.Card
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
		assert.Len(t, cards, 2)
	})

	t.Run("plain user sees only own cards", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/cards", "u1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var cards []entity.Card
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
		require.Len(t, cards, 1)
		assert.Equal(t, "1", cards[0].ID)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/cards", "", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown user id is rejected too", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/cards", "ghost", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestListCardsQueryParameters(t *testing.T) {
	h, repo := newTestServer(t)
	seedHandlerCard(t, repo, "1", "hunting", "backlog", "u1")
	seedHandlerCard(t, repo, "2", "hunting", "avancado", "u1")

	rec := doRequest(t, h, http.MethodGet, "/cards?filter.status=backlog", "a1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cards []entity.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "1", cards[0].ID)

	rec = doRequest(t, h, http.MethodGet, "/cards?q=dr.+2", "a1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "2", cards[0].ID)
}

func TestMoveEndpoint(t *testing.T) {
	h, repo := newTestServer(t)
	seedHandlerCard(t, repo, "1", "hunting", "backlog", "u1")
	seedHandlerCard(t, repo, "2", "hunting", "backlog", "u2")

	t.Run("valid move", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/cards/1/move", "u1",
			map[string]string{"target_stage": "interagindo"})
		require.Equal(t, http.StatusOK, rec.Code)
		var card entity.Card
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
		assert.Equal(t, "interagindo", card.Status)
	})

	t.Run("unknown stage is a 400", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/cards/1/move", "u1",
			map[string]string{"target_stage": "nonexistent"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing target stage is a 400", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/cards/1/move", "u1", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("foreign card reads as 404, not 403", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/cards/2/move", "u1",
			map[string]string{"target_stage": "interagindo"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetCardMasksInvisible(t *testing.T) {
	h, repo := newTestServer(t)
	seedHandlerCard(t, repo, "1", "hunting", "backlog", "u2")

	rec := doRequest(t, h, http.MethodGet, "/cards/1", "u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/cards/1", "m1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/cards/ghost", "a1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/cards", "u1", map[string]any{
		"dentist_name": "Dr. João Silva",
		"pipeline":     "hunting",
		"phone":        "(11) 98765-4321",
		"email":        "joao@email.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var card entity.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	assert.Equal(t, "backlog", card.Status)
	assert.Equal(t, "u1", card.Responsible)

	rec = doRequest(t, h, http.MethodPost, "/cards", "u1", map[string]any{
		"pipeline": "hunting",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	h, repo := newTestServer(t)
	seedHandlerCard(t, repo, "1", "hunting", "backlog", "u1")

	t.Run("owner without admin role gets 403", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodDelete, "/cards/1", "u1", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager gets 403", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodDelete, "/cards/1", "m1", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin deletes", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodDelete, "/cards/1", "a1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, h, http.MethodGet, "/cards/1", "a1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestReviewRegistrationEndpoint(t *testing.T) {
	h, repo := newTestServer(t)
	seedHandlerCard(t, repo, "1", "hunting", "cadastro", "u1")

	t.Run("seller cannot review", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/cards/1/registration", "u1",
			map[string]string{"decision": "approved"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager approves", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/cards/1/registration", "m1",
			map[string]string{"decision": "approved", "notes": "docs ok"})
		require.Equal(t, http.StatusOK, rec.Code)
		var card entity.Card
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
		assert.Equal(t, entity.RegistrationApproved, card.RegistrationStatus)
	})

	t.Run("second review conflicts with the state", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/cards/1/registration", "m1",
			map[string]string{"decision": "rejected"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
