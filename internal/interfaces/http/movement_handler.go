package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/internal/application/usecase"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// MovementHandler consulta del libro de movimientos (protegido).
type MovementHandler struct {
	uc  *usecase.MovementUseCase
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar últimos movimientos del tenant
// @Tags         movimentacoes
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(100)
// @Success      200    {object}  dto.MovementListResponse
// @Router       /api/movimentacoes [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	movements, err := h.uc.List(c.UserContext(), GetCompanyID(c), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.MovementListResponse{Success: true, Itens: make([]dto.MovementDTO, 0, len(movements))}
	for _, m := range movements {
		out.Itens = append(out.Itens, dto.MovementDTO{
			ID:         m.ID,
			ProdutoID:  m.ProductID,
			Codigo:     m.ProductCode,
			Descricao:  m.ProductDescription,
			Tipo:       m.Type,
			Quantidade: m.Quantity,
			Usuario:    m.Username,
			DataHora:   m.CreatedAt,
		})
	}
	return c.JSON(out)
}
