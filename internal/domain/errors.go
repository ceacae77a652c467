package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el username ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrCompanyInactive   = errors.New("empresa inactiva")
	ErrEmptyCount        = errors.New("no hay items en el conteo")
	ErrTransactionFailed = errors.New("la transacción no pudo completarse")
)

// ProductNotFoundError indica que la resolución de un identificador
// escaneado no encontró producto. Identifier conserva la cadena original
// tal como se escaneó, para que el operador vea qué falló.
type ProductNotFoundError struct {
	Identifier string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto %q no encontrado", e.Identifier)
}

// Is permite errors.Is(err, ErrNotFound) sobre este tipo.
func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
