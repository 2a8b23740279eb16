package repositories

import (
	"errors"

	"github.com/jackc/pgconn"
)

const duplicateViolationErrorCode = "23505"

var (
	// ErrJournalistNotFound journalist does not exist
	ErrJournalistNotFound = errors.New("journalist not found")
	// ErrJournalistAlreadyExists a journalist with the same national id is already stored
	ErrJournalistAlreadyExists = errors.New("journalist already exists")
	// ErrAssignmentNotFound assignment does not exist
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrAssignmentNumberTaken another assignment already uses the assignment number
	ErrAssignmentNumberTaken = errors.New("assignment number already taken")
)

func isDuplicateViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == duplicateViolationErrorCode && pgErr.ConstraintName == constraint
}
