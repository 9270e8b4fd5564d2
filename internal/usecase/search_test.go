package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/dental-crm/internal/entity"
)

func sampleCards() []entity.Card {
	return []entity.Card{
		{ID: "1", Pipeline: "hunting", Status: "backlog", Responsible: "u1",
			DentistName: "Dr. João Silva", ClinicName: "Clínica Odontológica Silva",
			Email: "joao.silva@email.com", Specialty: "implantodontista", PotentialValue: 50000},
		{ID: "2", Pipeline: "hunting", Status: "interagindo", Responsible: "u1",
			DentistName: "Dra. Maria Santos", ClinicName: "Centro Odontológico Santos",
			Email: "maria.santos@email.com", Specialty: "periodontista", PotentialValue: 75000},
		{ID: "3", Pipeline: "hunting", Status: "avancado", Responsible: "u2",
			DentistName: "Dr. Pedro Costa", ClinicName: "Clínica Costa",
			Email: "pedro.costa@email.com", Specialty: "cirurgiao-geral", PotentialValue: 100000},
		{ID: "4", Pipeline: "carteira", Status: "ativo", Responsible: "u1",
			DentistName: "Dr. Álvaro Nunes", ClinicName: "Odonto Nunes",
			Email: "alvaro@email.com", PotentialValue: 20000},
	}
}

func TestSearchCardsIsCaseInsensitiveAcrossFields(t *testing.T) {
	cards := sampleCards()

	got := SearchCards(cards, "JOÃO")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	// Matches any display field, not just the name.
	got = SearchCards(cards, "odontológico santos")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = SearchCards(cards, "email.com")
	assert.Len(t, got, 4)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	cards := sampleCards()
	got := SearchCards(cards, "  ")
	assert.Equal(t, cards, got)
}

func TestFilterByFieldsStacksWithAND(t *testing.T) {
	cards := sampleCards()

	got := FilterByFields(cards, []FieldFilter{
		{Field: "status", Value: "backlog"},
		{Field: "specialty", Value: "implanto"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = FilterByFields(cards, []FieldFilter{
		{Field: "status", Value: "backlog"},
		{Field: "specialty", Value: "periodontista"},
	})
	assert.Empty(t, got)
}

// Search then filter: only cards matching "silva" free-text AND status
// backlog survive.
func TestSearchAndFilterStacking(t *testing.T) {
	cards := sampleCards()

	got := FilterByFields(SearchCards(cards, "silva"), []FieldFilter{{Field: "status", Value: "backlog"}})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestSortCardsNumeric(t *testing.T) {
	cards := sampleCards()

	got := SortCards(cards, "potential_value", SortDesc)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"3", "2", "1", "4"}, ids(got))

	got = SortCards(cards, "potential_value", SortAsc)
	assert.Equal(t, []string{"4", "1", "2", "3"}, ids(got))
}

func TestSortCardsLocaleAware(t *testing.T) {
	cards := sampleCards()

	got := SortCards(cards, "dentist_name", SortAsc)
	// "Dr. Álvaro" sorts between "Dr." names by letter, not by byte value
	// of the accented rune.
	assert.Equal(t, []string{"4", "1", "3", "2"}, ids(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	cards := sampleCards()
	original := ids(cards)

	SortCards(cards, "potential_value", SortDesc)
	assert.Equal(t, original, ids(cards))
}

// Same inputs, same outputs: the engine holds no state.
func TestEnginePurity(t *testing.T) {
	cards := sampleCards()
	q := CardQuery{Search: "email", Filters: []FieldFilter{{Field: "pipeline", Value: "hunting"}},
		SortField: "potential_value", SortDir: SortDesc}
	actor := &entity.User{ID: "u1", Role: entity.RoleAdmin}

	first := QueryCards(actor, cards, q)
	second := QueryCards(actor, cards, q)
	assert.Equal(t, first, second)
}

func TestQueryCardsAppliesPermissionFirst(t *testing.T) {
	cards := sampleCards()
	seller := &entity.User{ID: "u2", Role: entity.RoleUser, Pipelines: []string{"hunting"}}

	// u2 owns only card 3; no query parameter can widen that.
	got := QueryCards(seller, cards, CardQuery{Search: "email.com"})
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	got = QueryCards(nil, cards, CardQuery{})
	assert.Empty(t, got)
}

func TestQueryCardsPipelineScope(t *testing.T) {
	cards := sampleCards()
	admin := &entity.User{ID: "a1", Role: entity.RoleAdmin}

	got := QueryCards(admin, cards, CardQuery{Pipeline: "carteira"})
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)
}

func ids(cards []entity.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
