package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/people360/internal/domain"
)

func TestHasCode_SoloPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.True(t, isUniqueViolation(fmt.Errorf("insert user: %w", pgErr)))
	assert.Equal(t, "users_email_key", constraintName(pgErr))

	// un texto con el código no es una violación
	assert.False(t, isUniqueViolation(errors.New("fila 23505 duplicada")))
	assert.False(t, isForeignKeyViolation(errors.New("error 23503")))
	assert.False(t, isUniqueViolation(nil))
}

func TestDBError_DatosInvalidosSonErrInvalidInput(t *testing.T) {
	for _, code := range []string{"22001", "22003", "22P02", "22007"} {
		err := dbError("get customer", &pgconn.PgError{Code: code})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, code)
		assert.Contains(t, err.Error(), "get customer")
	}

	err := dbError("get customer", &pgconn.PgError{Code: "08006"})
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern(" 50%_off "))
}
