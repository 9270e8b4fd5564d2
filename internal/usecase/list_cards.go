package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/permission"
)

// ListCardsUseCase feeds both the table view and ad-hoc queries. The
// permission filter runs inside QueryCards, so a plain user only ever sees
// their own cards no matter which parameters come in.
type ListCardsUseCase struct {
	Repo entity.CardRepositoryInterface
}

func NewListCardsUseCase(repo entity.CardRepositoryInterface) *ListCardsUseCase {
	return &ListCardsUseCase{Repo: repo}
}

func (uc *ListCardsUseCase) Execute(ctx context.Context, actor *entity.User, q CardQuery) ([]entity.Card, error) {
	if actor == nil {
		return nil, NewPermissionDeniedError("authentication required")
	}
	if q.Pipeline != "" && !permission.CanViewPipeline(actor, q.Pipeline) {
		return nil, NewPermissionDeniedError("no access to pipeline " + q.Pipeline)
	}
	all, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return QueryCards(actor, all, q), nil
}

// Get returns a single card, masking invisible cards as missing.
func (uc *ListCardsUseCase) Get(ctx context.Context, actor *entity.User, cardID string) (*entity.Card, error) {
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
	return card, nil
}
