package usecase

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/permission"
)

// The engine is pure: identical inputs yield identical output lists and the
// input slice is never mutated. Collation follows pt-BR so "Ávila" sorts
// next to "Avila", matching what localeCompare gave the table view.
var collator = collate.New(language.BrazilianPortuguese, collate.IgnoreCase)

// SearchCards keeps the cards whose display fields contain the query,
// case-insensitive. An empty query returns a copy of the input unchanged.
func SearchCards(cards []entity.Card, query string) []entity.Card {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]entity.Card, len(cards))
		copy(out, cards)
		return out
	}
	out := make([]entity.Card, 0, len(cards))
	for _, c := range cards {
		for _, v := range displayFields(&c) {
			if strings.Contains(strings.ToLower(v), query) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// FilterByFields applies per-column filters, AND-stacked, each a
// case-insensitive substring match on the named field.
func FilterByFields(cards []entity.Card, filters []FieldFilter) []entity.Card {
	if len(filters) == 0 {
		out := make([]entity.Card, len(cards))
		copy(out, cards)
		return out
	}
	out := make([]entity.Card, 0, len(cards))
	for _, c := range cards {
		if matchesAll(&c, filters) {
			out = append(out, c)
		}
	}
	return out
}

func matchesAll(c *entity.Card, filters []FieldFilter) bool {
	for _, f := range filters {
		v := fieldString(c, f.Field)
		if !strings.Contains(strings.ToLower(v), strings.ToLower(f.Value)) {
			return false
		}
	}
	return true
}

// SortCards returns a sorted copy. Numeric fields compare numerically,
// everything else through the pt-BR collator. The sort is stable so equal
// keys keep their relative (insertion) order.
func SortCards(cards []entity.Card, field string, dir SortDirection) []entity.Card {
	out := make([]entity.Card, len(cards))
	copy(out, cards)
	if field == "" {
		return out
	}

	numeric := isNumericField(field)
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		if numeric {
			less = fieldNumber(&out[i], field) < fieldNumber(&out[j], field)
		} else {
			less = collator.CompareString(fieldString(&out[i], field), fieldString(&out[j], field)) < 0
		}
		if dir == SortDesc {
			return !less && !fieldsEqual(&out[i], &out[j], field, numeric)
		}
		return less
	})
	return out
}

func fieldsEqual(a, b *entity.Card, field string, numeric bool) bool {
	if numeric {
		return fieldNumber(a, field) == fieldNumber(b, field)
	}
	return collator.CompareString(fieldString(a, field), fieldString(b, field)) == 0
}

// QueryCards is the shared pipeline of both views: permission filter, then
// optional pipeline scope, free-text search, column filters, sort.
func QueryCards(actor *entity.User, cards []entity.Card, q CardQuery) []entity.Card {
	result := permission.FilterCards(actor, cards)

	if q.Pipeline != "" {
		scoped := make([]entity.Card, 0, len(result))
		for _, c := range result {
			if c.Pipeline == q.Pipeline {
				scoped = append(scoped, c)
			}
		}
		result = scoped
	}

	result = SearchCards(result, q.Search)
	result = FilterByFields(result, q.Filters)
	return SortCards(result, q.SortField, q.SortDir)
}

func isNumericField(field string) bool {
	return field == "potential_value"
}

func fieldNumber(c *entity.Card, field string) float64 {
	switch field {
	case "potential_value":
		return c.PotentialValue
	default:
		return 0
	}
}

func fieldString(c *entity.Card, field string) string {
	switch field {
	case "id":
		return c.ID
	case "pipeline":
		return c.Pipeline
	case "status":
		return c.Status
	case "responsible":
		return c.Responsible
	case "dentist_name":
		return c.DentistName
	case "clinic_name":
		return c.ClinicName
	case "phone":
		return c.Phone
	case "email":
		return c.Email
	case "cnpj":
		return c.CNPJ
	case "cpf":
		return c.CPF
	case "address":
		return c.Address
	case "cep":
		return c.CEP
	case "specialty":
		return c.Specialty
	case "potential_value":
		return strconv.FormatFloat(c.PotentialValue, 'f', -1, 64)
	case "lead_source":
		return c.LeadSource
	case "preferred_brands":
		return c.PreferredBrands
	case "conversation_notes":
		return c.ConversationNotes
	case "next_steps":
		return c.NextSteps
	case "expected_close_date":
		return c.ExpectedCloseDate
	case "registration_status":
		return string(c.RegistrationStatus)
	default:
		return ""
	}
}

func displayFields(c *entity.Card) []string {
	return []string{
		c.DentistName, c.ClinicName, c.Phone, c.Email, c.CNPJ, c.CPF,
		c.Address, c.CEP, c.Specialty, c.LeadSource, c.PreferredBrands,
		c.ConversationNotes, c.NextSteps, c.Responsible, c.Status, c.Pipeline,
		strconv.FormatFloat(c.PotentialValue, 'f', -1, 64),
	}
}
