package usecase

import (
	"context"
	"sync"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/permission"
)

// BoardColumn is one rendered kanban column: a stage plus the cards sitting
// on it. Card order inside a column is repository insertion order; it is a
// presentation concern and is not persisted.
type BoardColumn struct {
	Stage entity.Stage  `json:"stage"`
	Cards []entity.Card `json:"cards"`
}

type Board struct {
	PipelineID string        `json:"pipeline_id"`
	Name       string        `json:"name"`
	Columns    []BoardColumn `json:"columns"`
}

type BoardUseCase struct {
	Repo     entity.CardRepositoryInterface
	Registry StageRegistry
}

func NewBoardUseCase(repo entity.CardRepositoryInterface, reg StageRegistry) *BoardUseCase {
	return &BoardUseCase{Repo: repo, Registry: reg}
}

// Build renders exactly the target pipeline's stage columns. Cards go
// through the same permission filter as every other view before they are
// bucketed, so the board can never show a card the table would hide.
func (uc *BoardUseCase) Build(ctx context.Context, actor *entity.User, pipelineID string) (*Board, error) {
	if !permission.CanViewPipeline(actor, pipelineID) {
		return nil, NewPermissionDeniedError("no access to pipeline " + pipelineID)
	}

	p, err := uc.Registry.Pipeline(pipelineID)
	if err != nil {
		return nil, NewNotFoundError("pipeline not found")
	}

	all, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := permission.FilterCards(actor, all)

	board := &Board{PipelineID: p.ID, Name: p.Name, Columns: make([]BoardColumn, len(p.Stages))}
	byStage := make(map[string][]entity.Card)
	for _, c := range visible {
		if c.Pipeline == pipelineID {
			byStage[c.Status] = append(byStage[c.Status], c)
		}
	}
	for i, s := range p.Stages {
		cards := byStage[s.ID]
		if cards == nil {
			cards = []entity.Card{}
		}
		board.Columns[i] = BoardColumn{Stage: s, Cards: cards}
	}
	return board, nil
}

type dragState int

const (
	dragIdle dragState = iota
	dragActive
)

// BoardController owns the drag-and-drop state machine:
// idle -> dragging(cardID) -> idle. A drop on an invalid target, a drop
// without an active drag, and an explicit cancel all resolve to a silent
// no-op; the repository is only touched on a validated drop.
type BoardController struct {
	mu     sync.Mutex
	state  dragState
	cardID string
	move   *MoveCardUseCase
}

func NewBoardController(move *MoveCardUseCase) *BoardController {
	return &BoardController{state: dragIdle, move: move}
}

func (bc *BoardController) BeginDrag(cardID string) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.state = dragActive
	bc.cardID = cardID
}

// Cancel resolves a released drag (pointer left every drop target) to a
// guaranteed no-op.
func (bc *BoardController) Cancel() {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.state = dragIdle
	bc.cardID = ""
}

func (bc *BoardController) Dragging() (string, bool) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.cardID, bc.state == dragActive
}

// Drop commits the active drag onto targetColumn. Whatever the outcome, the
// controller returns to idle. Validation failures come back as nil card and
// nil error: the view simply snaps the card to its source column.
func (bc *BoardController) Drop(ctx context.Context, actor *entity.User, targetColumn string) (*entity.Card, error) {
	bc.mu.Lock()
	cardID := bc.cardID
	active := bc.state == dragActive
	bc.state = dragIdle
	bc.cardID = ""
	bc.mu.Unlock()

	if !active {
		return nil, nil
	}

	moved, err := bc.move.Execute(ctx, actor, cardID, targetColumn)
	if err != nil {
		if IsValidation(err) {
			// Invalid drop target: ignore, card stays where it was.
			return nil, nil
		}
		return nil, err
	}
	return moved, nil
}
