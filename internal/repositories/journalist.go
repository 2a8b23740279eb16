package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/db"
)

const journalistNationalIDKey = "journalists_national_id_key"

type journalist struct {
	conn db.Storage
}

// NewJournalist returns a new journalist repository
func NewJournalist(conn db.Storage) ports.JournalistRepository {
	return &journalist{conn: conn}
}

// Save inserts a new journalist. It returns ErrJournalistAlreadyExists if the national id is taken.
// A conflict does not abort the surrounding transaction, so the caller can read the stored record.
func (j *journalist) Save(ctx context.Context, conn db.Querier, journalist *domain.Journalist) error {
	if conn == nil {
		conn = j.conn.Pgx
	}
	const insertJournalist = `INSERT INTO journalists (id, national_id, full_name, phone, email, photo_url, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (national_id) DO NOTHING`
	tag, err := conn.Exec(ctx, insertJournalist, journalist.ID, journalist.NationalID, journalist.FullName, journalist.Phone,
		journalist.Email, journalist.PhotoURL, journalist.CreatedAt, journalist.UpdatedAt)
	if isDuplicateViolation(err, journalistNationalIDKey) {
		return ErrJournalistAlreadyExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJournalistAlreadyExists
	}
	return nil
}

// GetByNationalID returns the journalist with the given national id
func (j *journalist) GetByNationalID(ctx context.Context, conn db.Querier, nationalID string) (*domain.Journalist, error) {
	if conn == nil {
		conn = j.conn.Pgx
	}
	const byNationalID = `SELECT id, national_id, full_name, phone, email, photo_url, created_at, updated_at
		FROM journalists
		WHERE national_id = $1`
	return scanJournalist(conn.QueryRow(ctx, byNationalID, nationalID))
}

// GetByID returns the journalist with the given id
func (j *journalist) GetByID(ctx context.Context, id uuid.UUID) (*domain.Journalist, error) {
	const byID = `SELECT id, national_id, full_name, phone, email, photo_url, created_at, updated_at
		FROM journalists
		WHERE id = $1`
	return scanJournalist(j.conn.Pgx.QueryRow(ctx, byID, id))
}

func scanJournalist(row pgx.Row) (*domain.Journalist, error) {
	var jr domain.Journalist
	err := row.Scan(&jr.ID, &jr.NationalID, &jr.FullName, &jr.Phone, &jr.Email, &jr.PhotoURL, &jr.CreatedAt, &jr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJournalistNotFound
	}
	if err != nil {
		return nil, err
	}
	return &jr, nil
}
