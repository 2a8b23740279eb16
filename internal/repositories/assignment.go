package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/db"
	"github.com/pressid/mission-orders/internal/timeapi"
)

const assignmentNumberKey = "assignments_assignment_number_key"

const assignmentFields = `assignments.id,
	assignments.assignment_number,
	assignments.journalist_id,
	assignments.registration_number,
	assignments.organization,
	assignments.position,
	assignments.mission_type,
	assignments.mission_location,
	assignments.start_date,
	assignments.end_date,
	assignments.issued_by,
	assignments.status,
	assignments.qr_code_data,
	assignments.signature_hash,
	assignments.encryption_key,
	assignments.created_at,
	assignments.updated_at,
	journalists.id,
	journalists.national_id,
	journalists.full_name,
	journalists.phone,
	journalists.email,
	journalists.photo_url,
	journalists.created_at,
	journalists.updated_at`

type assignment struct {
	conn db.Storage
}

// NewAssignment returns a new assignment repository
func NewAssignment(conn db.Storage) ports.AssignmentRepository {
	return &assignment{conn: conn}
}

// Save inserts a new assignment. It returns ErrAssignmentNumberTaken if the number is already used,
// without aborting the surrounding transaction so the caller can retry with another number.
func (a *assignment) Save(ctx context.Context, conn db.Querier, assignment *domain.Assignment) error {
	if conn == nil {
		conn = a.conn.Pgx
	}
	const insertAssignment = `INSERT INTO assignments (id, assignment_number, journalist_id, registration_number, organization, position,
		mission_type, mission_location, start_date, end_date, issued_by, status, qr_code_data, signature_hash, encryption_key,
		created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (assignment_number) DO NOTHING`
	tag, err := conn.Exec(ctx, insertAssignment,
		assignment.ID,
		assignment.Number,
		assignment.JournalistID,
		assignment.RegistrationNumber,
		assignment.Organization,
		assignment.Position,
		assignment.MissionType,
		assignment.MissionLocation,
		assignment.StartDate.Time(),
		assignment.EndDate.Time(),
		assignment.IssuedBy,
		string(assignment.Status),
		assignment.Payload,
		assignment.SignatureHash,
		assignment.EncryptionKey,
		assignment.CreatedAt,
		assignment.UpdatedAt)
	if isDuplicateViolation(err, assignmentNumberKey) {
		return ErrAssignmentNumberTaken
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssignmentNumberTaken
	}
	return nil
}

// GetByID returns an assignment with its journalist
func (a *assignment) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentFields + `
		FROM assignments
		JOIN journalists ON journalists.id = assignments.journalist_id
		WHERE assignments.id = $1`
	return scanAssignment(a.conn.Pgx.QueryRow(ctx, query, id))
}

// GetByPayload returns the assignment whose stored payload is exactly payload.
// The md5 condition lets postgres use the payload index, the equality condition makes the match exact.
func (a *assignment) GetByPayload(ctx context.Context, payload string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentFields + `
		FROM assignments
		JOIN journalists ON journalists.id = assignments.journalist_id
		WHERE md5(assignments.qr_code_data) = md5($1) AND assignments.qr_code_data = $1
		ORDER BY assignments.created_at DESC
		LIMIT 1`
	return scanAssignment(a.conn.Pgx.QueryRow(ctx, query, payload))
}

// GetAll returns the assignments matching the filter and the total number of matches, ignoring pagination
func (a *assignment) GetAll(ctx context.Context, filter *ports.AssignmentsFilter) ([]*domain.Assignment, uint, error) {
	query, countQuery, args := buildGetAllAssignmentsQuery(filter)

	var count uint
	if err := a.conn.Pgx.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := a.conn.Pgx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		item, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, err
		}
		assignments = append(assignments, item)
	}
	return assignments, count, rows.Err()
}

// Stats counts assignments by their stored status
func (a *assignment) Stats(ctx context.Context) (*domain.AssignmentStats, error) {
	const stats = `SELECT count(*),
		count(*) FILTER (WHERE status = 'active'),
		count(*) FILTER (WHERE status = 'expired'),
		count(*) FILTER (WHERE status = 'upcoming')
		FROM assignments`
	var s domain.AssignmentStats
	if err := a.conn.Pgx.QueryRow(ctx, stats).Scan(&s.Total, &s.Active, &s.Expired, &s.Upcoming); err != nil {
		return nil, err
	}
	return &s, nil
}

func buildGetAllAssignmentsQuery(filter *ports.AssignmentsFilter) (query string, countQuery string, args []interface{}) {
	query = `SELECT ##QUERYFIELDS## FROM assignments
		JOIN journalists ON journalists.id = assignments.journalist_id
		WHERE true `

	if filter.Query != nil {
		if pattern := containsPattern(*filter.Query); pattern != "" {
			args = append(args, pattern)
			query = fmt.Sprintf(`%s AND (journalists.full_name ILIKE $%[2]d OR assignments.assignment_number ILIKE $%[2]d
				OR assignments.mission_type ILIKE $%[2]d OR assignments.mission_location ILIKE $%[2]d) `, query, len(args))
		}
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query = fmt.Sprintf("%s AND assignments.status = $%d ", query, len(args))
	}
	if filter.JournalistID != nil {
		args = append(args, *filter.JournalistID)
		query = fmt.Sprintf("%s AND assignments.journalist_id = $%d ", query, len(args))
	}

	countQuery = strings.Replace(query, "##QUERYFIELDS##", "count(*)", 1)
	query = strings.Replace(query, "##QUERYFIELDS##", assignmentFields, 1)

	orderBy := append(filter.OrderBy[:0:0], filter.OrderBy...)
	_ = orderBy.Add(ports.AssignmentCreatedAt, true)
	query += " ORDER BY " + orderBy.String()
	query += fmt.Sprintf(" OFFSET %d LIMIT %d", filter.Pagination.GetOffset(), filter.Pagination.GetLimit())

	return query, countQuery, args
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var (
		a          domain.Assignment
		jr         domain.Journalist
		status     string
		start, end time.Time
	)
	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.JournalistID,
		&a.RegistrationNumber,
		&a.Organization,
		&a.Position,
		&a.MissionType,
		&a.MissionLocation,
		&start,
		&end,
		&a.IssuedBy,
		&status,
		&a.Payload,
		&a.SignatureHash,
		&a.EncryptionKey,
		&a.CreatedAt,
		&a.UpdatedAt,
		&jr.ID,
		&jr.NationalID,
		&jr.FullName,
		&jr.Phone,
		&jr.Email,
		&jr.PhotoURL,
		&jr.CreatedAt,
		&jr.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Status = domain.AssignmentStatus(status)
	a.StartDate = timeapi.DateOf(start, time.UTC)
	a.EndDate = timeapi.DateOf(end, time.UTC)
	a.Journalist = &jr
	return &a, nil
}
