package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/internal/application/usecase"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// DashboardHandler resumen del inventario del tenant (protegido).
type DashboardHandler struct {
	uc  *usecase.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Resumen del inventario del tenant
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	summary, err := h.uc.Get(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.DashboardResponse{
		Success:       true,
		TotalProdutos: summary.Stats.TotalProducts,
		EstoqueTotal:  summary.Stats.TotalStock,
		ValorTotal:    summary.Stats.TotalValue,
		TotalUsuarios: summary.Stats.ActiveUsers,
		MenorEstoque:  make([]dto.ProductResponse, 0, len(summary.LowestStock)),
	}
	for _, p := range summary.LowestStock {
		out.MenorEstoque = append(out.MenorEstoque, productResponse(p))
	}
	return c.JSON(out)
}
