package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/shop-admin/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeInvalidTextRepr      = "22P02"
	codeNumericOutOfRange    = "22003"
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isLockConflict timeout de bloqueo, fallo de serialización o deadlock.
func isLockConflict(err error) bool {
	switch pgCode(err) {
	case codeLockNotAvailable, codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return false
}

// wrapErr envuelve err con op y lo traduce a un sentinel de dominio cuando corresponde.
func wrapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isLockConflict(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConflict, err)
	case pgCode(err) == codeCheckViolation, pgCode(err) == codeNumericOutOfRange:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrInvalidInput, err)
	case pgCode(err) == codeInvalidTextRepr:
		// Un id que no es UUID no identifica ninguna fila.
		return fmt.Errorf("%s: %w: %v", op, domain.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
