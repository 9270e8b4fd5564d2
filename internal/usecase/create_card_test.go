package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/dental-crm/internal/entity"
)

func TestCreateCardDefaultsToFirstStageAndActor(t *testing.T) {
	repo, reg := testFixture(t)
	uc := NewCreateCardUseCase(repo, reg)
	ctx := context.Background()

	card, err := uc.Execute(ctx, sellerU1(), CreateCardInput{
		DentistName: "Dr. João Silva",
		Pipeline:    "hunting",
		Phone:       "(11) 98765-4321",
		Email:       "joao@email.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "backlog", card.Status)
	assert.Equal(t, "u1", card.Responsible)
	assert.NotEmpty(t, card.ID)

	stored, err := repo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, stored.ID)
}

func TestCreateCardExplicitStage(t *testing.T) {
	repo, reg := testFixture(t)
	uc := NewCreateCardUseCase(repo, reg)
	ctx := context.Background()

	card, err := uc.Execute(ctx, sellerU1(), CreateCardInput{
		DentistName: "Dra. Maria Santos",
		Pipeline:    "hunting",
		Status:      "interagindo",
		Phone:       "(11) 91234-5678",
		Email:       "maria@email.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "interagindo", card.Status)

	_, err = uc.Execute(ctx, sellerU1(), CreateCardInput{
		DentistName: "Dr. Pedro Costa",
		Pipeline:    "hunting",
		Status:      "churn",
		Phone:       "(11) 91234-5678",
		Email:       "pedro@email.com",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCreateCardValidation(t *testing.T) {
	repo, reg := testFixture(t)
	uc := NewCreateCardUseCase(repo, reg)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateCardInput
	}{
		{name: "missing dentist name", input: CreateCardInput{Pipeline: "hunting", Phone: "(11) 98765-4321", Email: "a@b.com"}},
		{name: "missing phone", input: CreateCardInput{DentistName: "Dr. X", Pipeline: "hunting", Email: "a@b.com"}},
		{name: "bad email", input: CreateCardInput{DentistName: "Dr. X", Pipeline: "hunting", Phone: "(11) 98765-4321", Email: "not-an-email"}},
		{name: "bad cpf", input: CreateCardInput{DentistName: "Dr. X", Pipeline: "hunting", Phone: "(11) 98765-4321", Email: "a@b.com", CPF: "123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, sellerU1(), tc.input)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestCreateCardPermissions(t *testing.T) {
	repo, reg := testFixture(t)
	uc := NewCreateCardUseCase(repo, reg)
	ctx := context.Background()

	base := CreateCardInput{
		DentistName: "Dr. João Silva",
		Pipeline:    "carteira",
		Phone:       "(11) 98765-4321",
		Email:       "joao@email.com",
	}

	t.Run("nil actor denied", func(t *testing.T) {
		_, err := uc.Execute(ctx, nil, base)
		require.Error(t, err)
		assert.True(t, IsPermissionDenied(err))
	})

	t.Run("actor outside the pipeline denied", func(t *testing.T) {
		_, err := uc.Execute(ctx, sellerU1(), base)
		require.Error(t, err)
		assert.True(t, IsPermissionDenied(err))
	})

	t.Run("plain user cannot assign to someone else", func(t *testing.T) {
		input := base
		input.Pipeline = "hunting"
		input.Responsible = "u2"
		_, err := uc.Execute(ctx, sellerU1(), input)
		require.Error(t, err)
		assert.True(t, IsPermissionDenied(err))
	})

	t.Run("manager assigns freely inside their pipelines", func(t *testing.T) {
		manager := &entity.User{ID: "m1", Role: entity.RoleManager, Pipelines: []string{"hunting"}}
		input := base
		input.Pipeline = "hunting"
		input.Responsible = "u2"
		card, err := uc.Execute(ctx, manager, input)
		require.NoError(t, err)
		assert.Equal(t, "u2", card.Responsible)
	})
}
