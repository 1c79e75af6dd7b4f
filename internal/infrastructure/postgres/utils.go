package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
)

// Códigos SQLSTATE que el libro distingue.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
	codeQueryCanceled        = "57014"
	codeCheckViolation       = "23514"
	codeNumericOutOfRange    = "22003"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// classify traduce fallas del driver a errores de dominio: espera de lock agotada, deadlock,
// serialización y conexión caída son ResourceUnavailable (el llamador puede reintentar).
// Un CHECK violado o un NUMERIC fuera de rango es entrada inválida.
// Los errores ya clasificados pasan sin cambios.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if domain.Code(err) != domain.CodeInternal {
		return err
	}
	switch pgCode(err) {
	case codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure, codeQueryCanceled:
		return fmt.Errorf("%w: %v", domain.ErrResourceUnavailable, err)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case codeCheckViolation, codeNumericOutOfRange:
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || isConnError(err) {
		return fmt.Errorf("%w: %v", domain.ErrResourceUnavailable, err)
	}
	return err
}

func isConnError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.SafeToRetry(err) || strings.Contains(err.Error(), "connection refused")
}

// isUUID evita enviar a PostgreSQL identificadores mal formados (22P02); para los
// repositorios un ID que no es UUID simplemente no existe.
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}
