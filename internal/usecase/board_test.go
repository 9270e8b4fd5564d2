package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardColumnsFollowRegistryOrder(t *testing.T) {
	repo, reg := testFixture(t)
	ctx := context.Background()
	seedCard(t, repo, "1", "hunting", "backlog", "u1")
	seedCard(t, repo, "2", "hunting", "avancado", "u1")
	seedCard(t, repo, "3", "hunting", "backlog", "u2")
	seedCard(t, repo, "4", "carteira", "ativo", "u1")

	uc := NewBoardUseCase(repo, reg)
	board, err := uc.Build(ctx, adminA1(), "hunting")
	require.NoError(t, err)

	require.Len(t, board.Columns, 5)
	colIDs := make([]string, len(board.Columns))
	for i, col := range board.Columns {
		colIDs[i] = col.Stage.ID
	}
	assert.Equal(t, []string{"backlog", "interagindo", "avancado", "cadastro", "venda-realizada"}, colIDs)

	assert.Len(t, board.Columns[0].Cards, 2)
	assert.Len(t, board.Columns[2].Cards, 1)
	// Empty columns render as empty lists, not null.
	assert.NotNil(t, board.Columns[1].Cards)
	assert.Empty(t, board.Columns[1].Cards)

	// The carteira card never leaks onto the hunting board.
	for _, col := range board.Columns {
		for _, c := range col.Cards {
			assert.Equal(t, "hunting", c.Pipeline)
		}
	}
}

func TestBoardAppliesPermissionFilter(t *testing.T) {
	repo, reg := testFixture(t)
	ctx := context.Background()
	seedCard(t, repo, "1", "hunting", "backlog", "u1")
	seedCard(t, repo, "2", "hunting", "backlog", "u2")

	uc := NewBoardUseCase(repo, reg)
	board, err := uc.Build(ctx, sellerU1(), "hunting")
	require.NoError(t, err)

	require.Len(t, board.Columns[0].Cards, 1)
	assert.Equal(t, "1", board.Columns[0].Cards[0].ID)
}

func TestBoardAccessDenied(t *testing.T) {
	repo, reg := testFixture(t)
	ctx := context.Background()
	uc := NewBoardUseCase(repo, reg)

	_, err := uc.Build(ctx, sellerU1(), "carteira")
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))

	_, err = uc.Build(ctx, nil, "hunting")
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
}

func TestBoardUnknownPipeline(t *testing.T) {
	repo, reg := testFixture(t)
	ctx := context.Background()
	uc := NewBoardUseCase(repo, reg)

	_, err := uc.Build(ctx, adminA1(), "nonexistent")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
