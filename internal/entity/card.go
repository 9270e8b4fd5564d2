package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrUnknownStage = errors.New("stage does not exist in the card's pipeline")
)

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// Card is a sales lead/client record tracked through a pipeline. The
// (Pipeline, Status) pair must always reference a stage registered for that
// pipeline; the repository enforces this on every mutation.
type Card struct {
	ID          string `json:"id"`
	Pipeline    string `json:"pipeline"`
	Status      string `json:"status"`
	Responsible string `json:"responsible"`

	DentistName string `json:"dentist_name"`
	ClinicName  string `json:"clinic_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
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

	// Registration sub-state is independent of the pipeline status. It is
	// set when the client-registration form is submitted and resolved by an
	// admin or manager review.
	RegistrationStatus RegistrationStatus `json:"registration_status,omitempty"`
	RegistrationNotes  string             `json:"registration_notes,omitempty"`
	RegistrationDate   *time.Time         `json:"registration_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardPatch is a partial update. Nil pointers mean "leave the field alone";
// the merge is last-write-wins per field set, there is no field-level
// conflict detection between concurrent writers.
type CardPatch struct {
	Pipeline    *string `json:"pipeline,omitempty"`
	Status      *string `json:"status,omitempty"`
	Responsible *string `json:"responsible,omitempty"`

	DentistName *string `json:"dentist_name,omitempty"`
	ClinicName  *string `json:"clinic_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	CNPJ        *string `json:"cnpj,omitempty"`
	CPF         *string `json:"cpf,omitempty"`
	Address     *string `json:"address,omitempty"`
	CEP         *string `json:"cep,omitempty"`

	Specialty         *string  `json:"specialty,omitempty"`
	PotentialValue    *float64 `json:"potential_value,omitempty"`
	LeadSource        *string  `json:"lead_source,omitempty"`
	PreferredBrands   *string  `json:"preferred_brands,omitempty"`
	NeedsSamples      *bool    `json:"needs_samples,omitempty"`
	ConversationNotes *string  `json:"conversation_notes,omitempty"`
	NextSteps         *string  `json:"next_steps,omitempty"`
	ExpectedCloseDate *string  `json:"expected_close_date,omitempty"`
}

// Apply merges the patch into the card in place.
func (p CardPatch) Apply(c *Card) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&c.Pipeline, p.Pipeline)
	setStr(&c.Status, p.Status)
	setStr(&c.Responsible, p.Responsible)
	setStr(&c.DentistName, p.DentistName)
	setStr(&c.ClinicName, p.ClinicName)
	setStr(&c.Phone, p.Phone)
	setStr(&c.Email, p.Email)
	setStr(&c.CNPJ, p.CNPJ)
	setStr(&c.CPF, p.CPF)
	setStr(&c.Address, p.Address)
	setStr(&c.CEP, p.CEP)
	setStr(&c.Specialty, p.Specialty)
	setStr(&c.LeadSource, p.LeadSource)
	setStr(&c.PreferredBrands, p.PreferredBrands)
	setStr(&c.ConversationNotes, p.ConversationNotes)
	setStr(&c.NextSteps, p.NextSteps)
	setStr(&c.ExpectedCloseDate, p.ExpectedCloseDate)
	if p.PotentialValue != nil {
		c.PotentialValue = *p.PotentialValue
	}
	if p.NeedsSamples != nil {
		c.NeedsSamples = *p.NeedsSamples
	}
	c.UpdatedAt = time.Now()
}

// Factory
func NewCard(pipeline, status, responsible, dentistName string) (*Card, error) {
	card := &Card{
		ID:          uuid.New().String(),
		Pipeline:    pipeline,
		Status:      status,
		Responsible: responsible,
		DentistName: dentistName,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

func (c *Card) Validate() error {
	if c.DentistName == "" {
		return errors.New("dentist name is required")
	}
	if c.Pipeline == "" {
		return errors.New("pipeline is required")
	}
	if c.Responsible == "" {
		return errors.New("responsible is required")
	}
	return nil
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, c *Card) error
	FindByID(ctx context.Context, id string) (*Card, error)
	Update(ctx context.Context, id string, patch CardPatch) (*Card, error)
	Move(ctx context.Context, id, targetStage string) (*Card, error)
	SetRegistration(ctx context.Context, id string, status RegistrationStatus, notes string) (*Card, error)
	List(ctx context.Context) ([]Card, error)
	Delete(ctx context.Context, id string) error
	CountByStage(ctx context.Context, pipelineID, stageID string) (int, error)
}
