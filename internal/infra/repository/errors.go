package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

// integrityViolationClass is the SQLSTATE class for unique, foreign key,
// not-null and check violations.
const integrityViolationClass = "23"

// translate maps driver errors onto the domain taxonomy. Anything it does
// not recognize is returned as is and ends up as an internal error.
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: duplicate key", domain.ErrConstraintViolation)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: foreign key violated", domain.ErrConstraintViolation)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return fmt.Errorf("%w: %s (%s)", domain.ErrConstraintViolation, pgErr.ConstraintName, pgErr.Code)
	}

	return err
}
