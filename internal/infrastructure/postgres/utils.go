package postgres

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// constraintName devuelve el constraint que provocó el error, si lo hay.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// isDataException clase 22 de SQLSTATE: texto demasiado largo (22001), número
// fuera de rango (22003), sintaxis inválida para el tipo (22P02), etc.
func isDataException(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "22")
}

// dbError envuelve el error de la consulta; los datos que la base rechaza por
// formato o tamaño salen como domain.ErrInvalidInput.
func dbError(op string, err error) error {
	if isDataException(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// likePattern arma el patrón ILIKE escapando comodines.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

// whereBuilder acumula condiciones con placeholders posicionales ($n).
type whereBuilder struct {
	conds []string
	args  []any
}

func newWhere(companyID string) *whereBuilder {
	return &whereBuilder{conds: []string{"company_id = $1"}, args: []any{companyID}}
}

// add agrega una condición; cada "?" se reemplaza por el siguiente placeholder.
func (w *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) sql() string {
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET al final de los argumentos.
func (w *whereBuilder) page(p repository.Page) (string, []any) {
	args := append(append([]any{}, w.args...), p.Limit, p.Offset)
	n := len(args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n-1, n), args
}
