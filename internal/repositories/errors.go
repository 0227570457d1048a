package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Classified conditions raised at the repository boundary. Handlers map these
// to HTTP status codes; repositories never retry or suppress them.
var (
	// ErrNotFound signals that the target post, poll, comment or row is absent.
	ErrNotFound = errors.New("entity does not exist")
	// ErrAlreadyExists signals a duplicate like, bookmark or vote for the same
	// (actor, target) pair, or a second poll on a post.
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrInvalidAnswer signals a vote referencing an answer index that does not
	// belong to the target poll.
	ErrInvalidAnswer = errors.New("answer does not belong to poll")
	// ErrConstraintViolation signals a store-level integrity failure not
	// classified otherwise.
	ErrConstraintViolation = errors.New("constraint violation")
)

// translateError maps store-level failures onto the repository taxonomy.
// Duplicate-key errors can still surface from the unique index when two
// concurrent creates race past the pre-insert check; exactly one of them
// loses and gets ErrAlreadyExists.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConstraintViolation
	default:
		return err
	}
}
