package usecase

type CreateCardInput struct {
	Pipeline    string `json:"pipeline"`
	Status      string `json:"status,omitempty"` // empty = first stage of the pipeline
	Responsible string `json:"responsible,omitempty"`

	DentistName string `json:"dentist_name"`
	ClinicName  string `json:"clinic_name,omitempty"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CNPJ        string `json:"cnpj,omitempty"`
	CPF         string `json:"cpf,omitempty"`
	Address     string `json:"address,omitempty"`
	CEP         string `json:"cep,omitempty"`

	Specialty         string  `json:"specialty,omitempty"`
	PotentialValue    float64 `json:"potential_value,omitempty"`
	LeadSource        string  `json:"lead_source,omitempty"`
	PreferredBrands   string  `json:"preferred_brands,omitempty"`
	NeedsSamples      bool    `json:"needs_samples,omitempty"`
	ConversationNotes string  `json:"conversation_notes,omitempty"`
	NextSteps         string  `json:"next_steps,omitempty"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty"`
}

type MoveCardInput struct {
	TargetStage string `json:"target_stage"`
}

type ReviewRegistrationInput struct {
	Decision string `json:"decision"` // approved | rejected
	Notes    string `json:"notes,omitempty"`
}

// FieldFilter is one per-column filter of the table view: case-insensitive
// substring match on the named field.
type FieldFilter struct {
	Field string
	Value string
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// CardQuery is what both views hand to the search engine.
type CardQuery struct {
	Pipeline  string
	Search    string
	Filters   []FieldFilter
	SortField string
	SortDir   SortDirection
}
