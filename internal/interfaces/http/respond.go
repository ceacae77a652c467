package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// respondError mapea errores de dominio a estados HTTP. Los fallos esperados
// devuelven 4xx con mensaje; cualquier otro error (conexión, transacción) es
// 500 con mensaje genérico y el detalle queda solo en el log.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var pnf *domain.ProductNotFoundError
	switch {
	case errors.As(err, &pnf):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(fmt.Sprintf("Produto não encontrado: %s", pnf.Identifier)))
	case errors.Is(err, domain.ErrEmptyCount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Nenhum item na contagem"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("Nome de usuário já existe"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("Registro duplicado"))
	case errors.Is(err, domain.ErrCompanyInactive):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Empresa inativa"))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Credenciais inválidas"))
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Usuário não encontrado"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Registro não encontrado"))
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error no mapeado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Erro interno do servidor"))
	}
}
