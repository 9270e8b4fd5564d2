package usecase

import (
	"context"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/permission"
)

// CreateCardUseCase is the lead-intake flow. New cards land on the first
// stage of the target pipeline unless a valid stage is given explicitly.
type CreateCardUseCase struct {
	Repo     entity.CardRepositoryInterface
	Registry StageRegistry
}

func NewCreateCardUseCase(repo entity.CardRepositoryInterface, reg StageRegistry) *CreateCardUseCase {
	return &CreateCardUseCase{Repo: repo, Registry: reg}
}

func (uc *CreateCardUseCase) Execute(ctx context.Context, actor *entity.User, input CreateCardInput) (*entity.Card, error) {
	if actor == nil {
		return nil, NewPermissionDeniedError("authentication required")
	}

	if validationErrors := ValidateCreateCardInput(input); len(validationErrors) > 0 {
		return nil, NewValidationError(formatValidationErrors(validationErrors))
	}

	if !permission.CanViewPipeline(actor, input.Pipeline) {
		return nil, NewPermissionDeniedError("no access to pipeline " + input.Pipeline)
	}

	responsible := input.Responsible
	if responsible == "" {
		responsible = actor.ID
	}
	if responsible != actor.ID && !permission.CanAssignCards(actor) {
		return nil, NewPermissionDeniedError("only admins and managers may assign cards to other users")
	}

	status := input.Status
	if status == "" {
		first, err := uc.Registry.FirstStage(input.Pipeline)
		if err != nil {
			return nil, NewValidationError("unknown pipeline: " + input.Pipeline)
		}
		status = first.ID
	} else if !uc.Registry.HasStage(input.Pipeline, status) {
		return nil, NewValidationError("stage " + status + " does not exist in pipeline " + input.Pipeline)
	}

	card, err := entity.NewCard(input.Pipeline, status, responsible, input.DentistName)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	card.ClinicName = input.ClinicName
	card.Phone = input.Phone
	card.Email = input.Email
	card.CNPJ = input.CNPJ
	card.CPF = input.CPF
	card.Address = input.Address
	card.CEP = input.CEP
	card.Specialty = input.Specialty
	card.PotentialValue = input.PotentialValue
	card.LeadSource = input.LeadSource
	card.PreferredBrands = input.PreferredBrands
	card.NeedsSamples = input.NeedsSamples
	card.ConversationNotes = input.ConversationNotes
	card.NextSteps = input.NextSteps
	card.ExpectedCloseDate = input.ExpectedCloseDate

	if err := uc.Repo.Create(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}
