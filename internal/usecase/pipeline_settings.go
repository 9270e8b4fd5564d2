package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/permission"
	"github.com/xavierca1/dental-crm/internal/registry"
)

// PipelineSettingsUseCase is the only writer of the registry. Removing a
// stage that still holds cards is rejected: the operator has to move them
// first, cards are never silently orphaned or auto-migrated.
type PipelineSettingsUseCase struct {
	Registry *registry.Registry
	Repo     entity.CardRepositoryInterface
}

func NewPipelineSettingsUseCase(reg *registry.Registry, repo entity.CardRepositoryInterface) *PipelineSettingsUseCase {
	return &PipelineSettingsUseCase{Registry: reg, Repo: repo}
}

func (uc *PipelineSettingsUseCase) guard(actor *entity.User) error {
	if !permission.CanConfigureSystem(actor) {
		return NewPermissionDeniedError("only admins may configure pipelines")
	}
	return nil
}

func (uc *PipelineSettingsUseCase) AddPipeline(actor *entity.User, p entity.Pipeline) error {
	if err := uc.guard(actor); err != nil {
		return err
	}
	if err := uc.Registry.AddPipeline(p); err != nil {
		return mapRegistryError(err)
	}
	return nil
}

func (uc *PipelineSettingsUseCase) AddStage(actor *entity.User, pipelineID string, s entity.Stage) error {
	if err := uc.guard(actor); err != nil {
		return err
	}
	if s.ID == "" || s.Name == "" {
		return NewValidationError("stage id and name are required")
	}
	if err := uc.Registry.AddStage(pipelineID, s); err != nil {
		return mapRegistryError(err)
	}
	return nil
}

func (uc *PipelineSettingsUseCase) RenameStage(actor *entity.User, pipelineID, stageID, name, color string) error {
	if err := uc.guard(actor); err != nil {
		return err
	}
	if name == "" {
		return NewValidationError("stage name is required")
	}
	if err := uc.Registry.RenameStage(pipelineID, stageID, name, color); err != nil {
		return mapRegistryError(err)
	}
	return nil
}

func (uc *PipelineSettingsUseCase) RemoveStage(ctx context.Context, actor *entity.User, pipelineID, stageID string) error {
	if err := uc.guard(actor); err != nil {
		return err
	}
	if !uc.Registry.HasStage(pipelineID, stageID) {
		return NewNotFoundError("stage not found")
	}
	count, err := uc.Repo.CountByStage(ctx, pipelineID, stageID)
	if err != nil {
		return err
	}
	if count > 0 {
		return NewStageConflictError("stage still holds cards; move them before removing it")
	}
	if err := uc.Registry.RemoveStage(pipelineID, stageID); err != nil {
		return mapRegistryError(err)
	}
	return nil
}

func (uc *PipelineSettingsUseCase) RemovePipeline(ctx context.Context, actor *entity.User, pipelineID string) error {
	if err := uc.guard(actor); err != nil {
		return err
	}
	stages, err := uc.Registry.Stages(pipelineID)
	if err != nil {
		return mapRegistryError(err)
	}
	for _, s := range stages {
		count, err := uc.Repo.CountByStage(ctx, pipelineID, s.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return NewStageConflictError("pipeline still holds cards; move them before removing it")
		}
	}
	if err := uc.Registry.RemovePipeline(pipelineID); err != nil {
		return mapRegistryError(err)
	}
	return nil
}

func mapRegistryError(err error) error {
	switch {
	case errors.Is(err, entity.ErrPipelineNotFound), errors.Is(err, entity.ErrStageNotFound):
		return NewNotFoundError(err.Error())
	case errors.Is(err, entity.ErrDuplicatePipeline), errors.Is(err, entity.ErrDuplicateStage),
		errors.Is(err, entity.ErrPipelineEmpty):
		return NewValidationError(err.Error())
	default:
		return err
	}
}
