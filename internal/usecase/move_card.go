package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/permission"
)

// MoveCardUseCase validates and commits a stage transition. Moves are
// status-only: a card never changes pipeline through a drag.
type MoveCardUseCase struct {
	Repo     entity.CardRepositoryInterface
	Registry StageRegistry
	Queue    QueueProducerInterface // optional; nil disables notifications
}

func NewMoveCardUseCase(repo entity.CardRepositoryInterface, reg StageRegistry, q QueueProducerInterface) *MoveCardUseCase {
	return &MoveCardUseCase{Repo: repo, Registry: reg, Queue: q}
}

func (uc *MoveCardUseCase) Execute(ctx context.Context, actor *entity.User, cardID, targetStage string) (*entity.Card, error) {
	card, err := uc.Repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, entity.ErrCardNotFound) {
			return nil, NewNotFoundError("card not found")
		}
		return nil, err
	}

	if !permission.CanViewCard(actor, card) {
		return nil, NewNotFoundError("card not found")
	}
	if !permission.CanEditCard(actor, card) {
		return nil, NewPermissionDeniedError("no edit access to this card")
	}

	if !uc.Registry.HasStage(card.Pipeline, targetStage) {
		return nil, NewValidationError("stage " + targetStage + " does not exist in pipeline " + card.Pipeline)
	}

	// Dropping a card on its own column is a no-op.
	if card.Status == targetStage {
		return card, nil
	}

	fromStage := card.Status
	moved, err := uc.Repo.Move(ctx, cardID, targetStage)
	if err != nil {
		if errors.Is(err, entity.ErrCardNotFound) {
			return nil, NewNotFoundError("card not found")
		}
		if errors.Is(err, entity.ErrUnknownStage) {
			return nil, NewValidationError(err.Error())
		}
		return nil, err
	}

	if uc.Queue != nil {
		uc.publishMoved(ctx, moved, fromStage)
	}

	return moved, nil
}

func (uc *MoveCardUseCase) publishMoved(ctx context.Context, card *entity.Card, fromStage string) {
	// Publishing happens after the commit; a queue failure never rolls the
	// move back, it only costs the notification.
	_ = uc.Queue.PublishCardEvent(ctx, cardMovedPayload(card, fromStage))
}
