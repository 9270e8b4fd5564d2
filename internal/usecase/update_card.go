package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/permission"
)

type UpdateCardUseCase struct {
	Repo     entity.CardRepositoryInterface
	Registry StageRegistry
}

func NewUpdateCardUseCase(repo entity.CardRepositoryInterface, reg StageRegistry) *UpdateCardUseCase {
	return &UpdateCardUseCase{Repo: repo, Registry: reg}
}

// Execute applies a partial field update. Pipeline/status changes ride the
// same path and are validated together, so a patch can never land a card on
// a stage its pipeline does not define.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, actor *entity.User, cardID string, patch entity.CardPatch) (*entity.Card, error) {
	card, err := uc.Repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, entity.ErrCardNotFound) {
			return nil, NewNotFoundError("card not found")
		}
		return nil, err
	}

	// Invisible cards read as nonexistent so ids cannot be probed.
	if !permission.CanViewCard(actor, card) {
		return nil, NewNotFoundError("card not found")
	}
	if !permission.CanEditCard(actor, card) {
		return nil, NewPermissionDeniedError("no edit access to this card")
	}

	if patch.Responsible != nil && *patch.Responsible != card.Responsible && !permission.CanAssignCards(actor) {
		return nil, NewPermissionDeniedError("only admins and managers may reassign cards")
	}

	// Moving a card across pipelines needs the same entitlement as creating
	// one there.
	if patch.Pipeline != nil && *patch.Pipeline != card.Pipeline && !permission.CanViewPipeline(actor, *patch.Pipeline) {
		return nil, NewPermissionDeniedError("no access to pipeline " + *patch.Pipeline)
	}

	// Resolve the resulting (pipeline, status) pair before touching the store.
	targetPipeline := card.Pipeline
	if patch.Pipeline != nil {
		targetPipeline = *patch.Pipeline
	}
	targetStatus := card.Status
	if patch.Status != nil {
		targetStatus = *patch.Status
	}
	if patch.Pipeline != nil && patch.Status == nil {
		// A pipeline change without a stage drops the card on the new
		// pipeline's first stage.
		first, err := uc.Registry.FirstStage(targetPipeline)
		if err != nil {
			return nil, NewValidationError("unknown pipeline: " + targetPipeline)
		}
		targetStatus = first.ID
		patch.Status = &targetStatus
	}
	if !uc.Registry.HasStage(targetPipeline, targetStatus) {
		return nil, NewValidationError("stage " + targetStatus + " does not exist in pipeline " + targetPipeline)
	}

	updated, err := uc.Repo.Update(ctx, cardID, patch)
	if err != nil {
		if errors.Is(err, entity.ErrCardNotFound) {
			return nil, NewNotFoundError("card not found")
		}
		if errors.Is(err, entity.ErrUnknownStage) {
			return nil, NewValidationError(err.Error())
		}
		return nil, err
	}
	return updated, nil
}

type DeleteCardUseCase struct {
	Repo entity.CardRepositoryInterface
}

func NewDeleteCardUseCase(repo entity.CardRepositoryInterface) *DeleteCardUseCase {
	return &DeleteCardUseCase{Repo: repo}
}

func (uc *DeleteCardUseCase) Execute(ctx context.Context, actor *entity.User, cardID string) error {
	card, err := uc.Repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, entity.ErrCardNotFound) {
			return NewNotFoundError("card not found")
		}
		return err
	}
	if !permission.CanViewCard(actor, card) {
		return NewNotFoundError("card not found")
	}
	if !permission.CanDeleteCard(actor, card) {
		return NewPermissionDeniedError("only admins may delete cards")
	}
	return uc.Repo.Delete(ctx, cardID)
}
