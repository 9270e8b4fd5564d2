package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/memory"
	"github.com/xavierca1/dental-crm/internal/registry"
)

func settingsFixture(t *testing.T) (*PipelineSettingsUseCase, *memory.CardRepository, *registry.Registry) {
	t.Helper()
	reg := registry.NewDefault()
	repo := memory.NewCardRepository(reg)
	return NewPipelineSettingsUseCase(reg, repo), repo, reg
}

func adminA1() *entity.User {
	return &entity.User{ID: "a1", Name: "Admin", Role: entity.RoleAdmin}
}

func TestSettingsAdminOnly(t *testing.T) {
	uc, _, _ := settingsFixture(t)
	ctx := context.Background()
	manager := &entity.User{ID: "m1", Role: entity.RoleManager, Pipelines: []string{"hunting"}}

	assert.True(t, IsPermissionDenied(uc.AddStage(manager, "hunting", entity.Stage{ID: "novo", Name: "Novo"})))
	assert.True(t, IsPermissionDenied(uc.RenameStage(manager, "hunting", "backlog", "Leads", "")))
	assert.True(t, IsPermissionDenied(uc.RemoveStage(ctx, manager, "hunting", "backlog")))
	assert.True(t, IsPermissionDenied(uc.RemovePipeline(ctx, manager, "hunting")))
	assert.True(t, IsPermissionDenied(uc.AddPipeline(nil, entity.Pipeline{ID: "x"})))
}

func TestRemoveStageBlockedWhileCardsRemain(t *testing.T) {
	uc, repo, reg := settingsFixture(t)
	ctx := context.Background()
	admin := adminA1()
	seedCard(t, repo, "1", "hunting", "cadastro", "u1")

	err := uc.RemoveStage(ctx, admin, "hunting", "cadastro")
	require.Error(t, err)
	assert.True(t, IsStageConflict(err))
	assert.True(t, reg.HasStage("hunting", "cadastro"))

	// Once the card moves off, removal goes through.
	_, err = repo.Move(ctx, "1", "avancado")
	require.NoError(t, err)
	require.NoError(t, uc.RemoveStage(ctx, admin, "hunting", "cadastro"))
	assert.False(t, reg.HasStage("hunting", "cadastro"))
}

func TestRemovePipelineBlockedWhileCardsRemain(t *testing.T) {
	uc, repo, reg := settingsFixture(t)
	ctx := context.Background()
	admin := adminA1()
	seedCard(t, repo, "1", "resgate", "esfriou", "u1")

	err := uc.RemovePipeline(ctx, admin, "resgate")
	require.Error(t, err)
	assert.True(t, IsStageConflict(err))

	require.NoError(t, repo.Delete(ctx, "1"))
	require.NoError(t, uc.RemovePipeline(ctx, admin, "resgate"))
	_, err = reg.Pipeline("resgate")
	assert.Error(t, err)
}

func TestSettingsMapRegistryErrors(t *testing.T) {
	uc, _, _ := settingsFixture(t)
	ctx := context.Background()
	admin := adminA1()

	err := uc.AddStage(admin, "hunting", entity.Stage{ID: "backlog", Name: "Duplicado"})
	assert.True(t, IsValidation(err))

	err = uc.AddStage(admin, "nonexistent", entity.Stage{ID: "x", Name: "X"})
	assert.True(t, IsNotFound(err))

	err = uc.RemoveStage(ctx, admin, "hunting", "nonexistent")
	assert.True(t, IsNotFound(err))

	err = uc.AddPipeline(admin, entity.Pipeline{ID: "novo", Name: "Novo"})
	assert.True(t, IsValidation(err))

	err = uc.AddStage(admin, "hunting", entity.Stage{Name: "sem id"})
	assert.True(t, IsValidation(err))
}
