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

type verificationLog struct {
	conn db.Storage
}

// NewVerificationLog returns a new verification log repository
func NewVerificationLog(conn db.Storage) ports.VerificationLogRepository {
	return &verificationLog{conn: conn}
}

// Save appends an entry to the verification log
func (v *verificationLog) Save(ctx context.Context, entry *domain.VerificationLog) error {
	const insertLog = `INSERT INTO verification_logs (id, assignment_id, verification_count, verification_result, notes, verified_by, verified_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)`
	_, err := v.conn.Pgx.Exec(ctx, insertLog, entry.ID, entry.AssignmentID, entry.Count, string(entry.Result), entry.Notes,
		entry.VerifiedBy, entry.VerifiedAt)
	return err
}

// LatestCount returns the counter of the most recent entry of an assignment or 0 when it was never verified
func (v *verificationLog) LatestCount(ctx context.Context, assignmentID uuid.UUID) (int, error) {
	const latest = `SELECT verification_count
		FROM verification_logs
		WHERE assignment_id = $1
		ORDER BY verified_at DESC, verification_count DESC NULLS LAST
		LIMIT 1`
	var count *int
	err := v.conn.Pgx.QueryRow(ctx, latest, assignmentID).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if count == nil {
		return 0, nil
	}
	return *count, nil
}

// GetByAssignment returns the verification history of an assignment, most recent first
func (v *verificationLog) GetByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.VerificationLog, error) {
	const byAssignment = `SELECT id, assignment_id, verification_count, verification_result, coalesce(notes, ''), verified_by, verified_at
		FROM verification_logs
		WHERE assignment_id = $1
		ORDER BY verified_at DESC, verification_count DESC NULLS LAST`
	rows, err := v.conn.Pgx.Query(ctx, byAssignment, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.VerificationLog, 0)
	for rows.Next() {
		var (
			entry  domain.VerificationLog
			result string
		)
		if err := rows.Scan(&entry.ID, &entry.AssignmentID, &entry.Count, &result, &entry.Notes, &entry.VerifiedBy, &entry.VerifiedAt); err != nil {
			return nil, err
		}
		entry.Result = domain.VerificationResult(result)
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
