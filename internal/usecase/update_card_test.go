package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/dental-crm/internal/entity"
)

func TestUpdateCardMergesFields(t *testing.T) {
	repo, reg := testFixture(t)
	ctx := context.Background()
	seedCard(t, repo, "1", "hunting", "backlog", "u1")

	uc := NewUpdateCardUseCase(repo, reg)
	clinic := "Clínica Silva"
	updated, err := uc.Execute(ctx, sellerU1(), "1", entity.CardPatch{ClinicName: &clinic})
	require.NoError(t, err)
	assert.Equal(t, "Clínica Silva", updated.ClinicName)
	assert.Equal(t, "backlog", updated.Status)
}

func TestUpdateCardPipelineChangeNeedsEntitlement(t *testing.T) {
	repo, reg := testFixture(t)
	ctx := context.Background()
	seedCard(t, repo, "1", "hunting", "backlog", "u1")

	uc := NewUpdateCardUseCase(repo, reg)
	carteira := "carteira"

	t.Run("user without access to the target pipeline is denied", func(t *testing.T) {
		_, err := uc.Execute(ctx, sellerU1(), "1", entity.CardPatch{Pipeline: &carteira})
		require.Error(t, err)
		assert.True(t, IsPermissionDenied(err))

		fresh, err := repo.FindByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "hunting", fresh.Pipeline)
		assert.Equal(t, "backlog", fresh.Status)
	})

	t.Run("entitled user lands on the new pipeline's first stage", func(t *testing.T) {
		entitled := &entity.User{ID: "u1", Role: entity.RoleUser, Pipelines: []string{"hunting", "carteira"}}
		updated, err := uc.Execute(ctx, entitled, "1", entity.CardPatch{Pipeline: &carteira})
		require.NoError(t, err)
		assert.Equal(t, "carteira", updated.Pipeline)
		assert.Equal(t, "ativo", updated.Status)
	})

	t.Run("restating the current pipeline needs no extra entitlement", func(t *testing.T) {
		seedCard(t, repo, "2", "hunting", "backlog", "u1")
		hunting := "hunting"
		updated, err := uc.Execute(ctx, sellerU1(), "2", entity.CardPatch{Pipeline: &hunting})
		require.NoError(t, err)
		assert.Equal(t, "hunting", updated.Pipeline)
	})
}

func TestUpdateCardRejectsForeignStagePair(t *testing.T) {
	repo, reg := testFixture(t)
	ctx := context.Background()
	seedCard(t, repo, "1", "hunting", "backlog", "u1")

	uc := NewUpdateCardUseCase(repo, reg)
	bad := "churn" // belongs to lixeira
	_, err := uc.Execute(ctx, sellerU1(), "1", entity.CardPatch{Status: &bad})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	fresh, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "backlog", fresh.Status)
}

func TestUpdateCardMasksInvisible(t *testing.T) {
	repo, reg := testFixture(t)
	ctx := context.Background()
	seedCard(t, repo, "1", "hunting", "backlog", "u2")

	uc := NewUpdateCardUseCase(repo, reg)
	clinic := "x"
	_, err := uc.Execute(ctx, sellerU1(), "1", entity.CardPatch{ClinicName: &clinic})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
