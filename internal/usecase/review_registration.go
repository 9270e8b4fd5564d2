package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/queue"
	"github.com/xavierca1/dental-crm/internal/permission"
)

// ReviewRegistrationUseCase resolves a card's client-registration request.
// Approval publishes a notification so the responsible seller hears about it
// without polling the board.
type ReviewRegistrationUseCase struct {
	Repo  entity.CardRepositoryInterface
	Queue QueueProducerInterface // optional
}

func NewReviewRegistrationUseCase(repo entity.CardRepositoryInterface, q QueueProducerInterface) *ReviewRegistrationUseCase {
	return &ReviewRegistrationUseCase{Repo: repo, Queue: q}
}

func (uc *ReviewRegistrationUseCase) Execute(ctx context.Context, actor *entity.User, cardID string, input ReviewRegistrationInput) (*entity.Card, error) {
	var decision entity.RegistrationStatus
	switch input.Decision {
	case string(entity.RegistrationApproved):
		decision = entity.RegistrationApproved
	case string(entity.RegistrationRejected):
		decision = entity.RegistrationRejected
	default:
		return nil, NewValidationError("decision must be approved or rejected")
	}

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
	if !permission.CanAssignCards(actor) {
		return nil, NewPermissionDeniedError("only admins and managers review registrations")
	}
	if card.RegistrationStatus != entity.RegistrationPending {
		return nil, NewValidationError("card has no pending registration")
	}

	updated, err := uc.Repo.SetRegistration(ctx, cardID, decision, input.Notes)
	if err != nil {
		if errors.Is(err, entity.ErrCardNotFound) {
			return nil, NewNotFoundError("card not found")
		}
		return nil, err
	}

	if uc.Queue != nil {
		if err := uc.Queue.PublishCardEvent(ctx, registrationReviewedPayload(updated)); err != nil {
			log.Printf("registration notification not published for card %s: %v", updated.ID, err)
		}
	}

	return updated, nil
}

func cardMovedPayload(card *entity.Card, fromStage string) queue.CardEventPayload {
	return queue.CardEventPayload{
		Event:       queue.EventCardMoved,
		CardID:      card.ID,
		Pipeline:    card.Pipeline,
		FromStage:   fromStage,
		ToStage:     card.Status,
		Responsible: card.Responsible,
		DentistName: card.DentistName,
	}
}

func registrationReviewedPayload(card *entity.Card) queue.CardEventPayload {
	return queue.CardEventPayload{
		Event:       queue.EventRegistrationReviewed,
		CardID:      card.ID,
		Pipeline:    card.Pipeline,
		ToStage:     card.Status,
		Responsible: card.Responsible,
		DentistName: card.DentistName,
		Decision:    string(card.RegistrationStatus),
		Notes:       card.RegistrationNotes,
	}
}
