// Package database is the optional Postgres backing store. It satisfies the
// same contract as the in-memory repository: stage validation before every
// commit, copies out, no silent data loss.
package database

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/dental-crm/internal/entity"
)

type StageValidator interface {
	HasStage(pipelineID, stageID string) bool
	FirstStage(pipelineID string) (entity.Stage, error)
}

type CardRepository struct {
	DB       *sql.DB
	registry StageValidator
}

func NewCardRepository(db *sql.DB, registry StageValidator) *CardRepository {
	return &CardRepository{DB: db, registry: registry}
}

const cardColumns = `id, pipeline, status, responsible, dentist_name, clinic_name,
	phone, email, cnpj, cpf, address, cep, specialty, potential_value, lead_source,
	preferred_brands, needs_samples, conversation_notes, next_steps,
	expected_close_date, registration_status, registration_notes,
	registration_date, created_at, updated_at`

func (r *CardRepository) Create(ctx context.Context, c *entity.Card) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		first, err := r.registry.FirstStage(c.Pipeline)
		if err != nil {
			return entity.ErrUnknownStage
		}
		c.Status = first.ID
	}
	if !r.registry.HasStage(c.Pipeline, c.Status) {
		return entity.ErrUnknownStage
	}

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Pipeline, c.Status, c.Responsible, c.DentistName, c.ClinicName,
		c.Phone, c.Email, c.CNPJ, c.CPF, c.Address, c.CEP, c.Specialty,
		c.PotentialValue, c.LeadSource, c.PreferredBrands, c.NeedsSamples,
		c.ConversationNotes, c.NextSteps, c.ExpectedCloseDate,
		nullString(string(c.RegistrationStatus)), c.RegistrationNotes,
		c.RegistrationDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		log.Printf("card insert failed: %v", err)
		return err
	}
	return nil
}

func (r *CardRepository) FindByID(ctx context.Context, id string) (*entity.Card, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
	return scanCard(row)
}

// Update reads, merges and writes under a transaction so the patch applies
// against a consistent snapshot. Field merge is last-write-wins.
func (r *CardRepository) Update(ctx context.Context, id string, patch entity.CardPatch) (*entity.Card, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1 FOR UPDATE`, id)
	card, err := scanCard(row)
	if err != nil {
		return nil, err
	}

	patch.Apply(card)
	if !r.registry.HasStage(card.Pipeline, card.Status) {
		return nil, entity.ErrUnknownStage
	}

	if err := writeCard(ctx, tx, card); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return card, nil
}

func (r *CardRepository) Move(ctx context.Context, id, targetStage string) (*entity.Card, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1 FOR UPDATE`, id)
	card, err := scanCard(row)
	if err != nil {
		return nil, err
	}
	if !r.registry.HasStage(card.Pipeline, targetStage) {
		return nil, entity.ErrUnknownStage
	}
	if card.Status == targetStage {
		return card, nil
	}

	card.Status = targetStage
	card.UpdatedAt = time.Now()
	if err := writeCard(ctx, tx, card); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return card, nil
}

func (r *CardRepository) SetRegistration(ctx context.Context, id string, status entity.RegistrationStatus, notes string) (*entity.Card, error) {
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, `
		UPDATE cards
		SET registration_status = $2, registration_notes = $3,
			registration_date = $4, updated_at = $4
		WHERE id = $1
	`, id, string(status), notes, now)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entity.ErrCardNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *CardRepository) List(ctx context.Context) ([]entity.Card, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *card)
	}
	return out, rows.Err()
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) CountByStage(ctx context.Context, pipelineID, stageID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE pipeline = $1 AND status = $2`,
		pipelineID, stageID,
	).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*entity.Card, error) {
	var c entity.Card
	var regStatus sql.NullString
	var regDate sql.NullTime
	err := row.Scan(
		&c.ID, &c.Pipeline, &c.Status, &c.Responsible, &c.DentistName,
		&c.ClinicName, &c.Phone, &c.Email, &c.CNPJ, &c.CPF, &c.Address, &c.CEP,
		&c.Specialty, &c.PotentialValue, &c.LeadSource, &c.PreferredBrands,
		&c.NeedsSamples, &c.ConversationNotes, &c.NextSteps,
		&c.ExpectedCloseDate, &regStatus, &c.RegistrationNotes, &regDate,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	if regStatus.Valid {
		c.RegistrationStatus = entity.RegistrationStatus(regStatus.String)
	}
	if regDate.Valid {
		c.RegistrationDate = &regDate.Time
	}
	return &c, nil
}

func writeCard(ctx context.Context, tx *sql.Tx, c *entity.Card) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE cards SET
			pipeline = $2, status = $3, responsible = $4, dentist_name = $5,
			clinic_name = $6, phone = $7, email = $8, cnpj = $9, cpf = $10,
			address = $11, cep = $12, specialty = $13, potential_value = $14,
			lead_source = $15, preferred_brands = $16, needs_samples = $17,
			conversation_notes = $18, next_steps = $19,
			expected_close_date = $20, updated_at = $21
		WHERE id = $1
	`,
		c.ID, c.Pipeline, c.Status, c.Responsible, c.DentistName, c.ClinicName,
		c.Phone, c.Email, c.CNPJ, c.CPF, c.Address, c.CEP, c.Specialty,
		c.PotentialValue, c.LeadSource, c.PreferredBrands, c.NeedsSamples,
		c.ConversationNotes, c.NextSteps, c.ExpectedCloseDate, c.UpdatedAt,
	)
	return err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
