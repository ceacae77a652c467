package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/counting"
	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// CountHandler endpoints del conteo físico (protegido, sesión de empresa).
type CountHandler struct {
	uc        *counting.UseCase
	sheet     *pdf.CountSheetGenerator
	companies repository.CompanyRepository
	log       *logger.Logger
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *counting.UseCase, sheet *pdf.CountSheetGenerator, companies repository.CompanyRepository, log *logger.Logger) *CountHandler {
	return &CountHandler{uc: uc, sheet: sheet, companies: companies, log: log}
}

// Add godoc
// @Summary      Registrar un escaneo en el conteo
// @Tags         contagem
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccumulateRequest  true  "Identificador escaneado y cantidad"
// @Success      200   {object}  dto.AccumulateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contagem/add [post]
func (h *CountHandler) Add(c *fiber.Ctx) error {
	var in dto.AccumulateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	delta, err := counting.ParseQuantityJSON(in.Quantidade)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Quantidade inválida"))
	}

	result, err := h.uc.Accumulate(c.UserContext(), GetCompanyID(c), in.Identifier, delta)
	if err != nil {
		return respondError(c, h.log, err)
	}

	resp := dto.AccumulateResponse{
		Success: true,
		Produto: &dto.ProdutoRef{
			ID:        result.Product.ID,
			Codigo:    result.Product.Code,
			Descricao: result.Product.Description,
		},
		Removed: result.Removed,
	}
	if result.Removed {
		resp.Message = fmt.Sprintf("Produto %s removido da contagem", result.Product.Code)
	} else {
		resp.Message = fmt.Sprintf("Produto %s registrado", result.Product.Code)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar items del conteo en curso
// @Tags         contagem
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CountListResponse
// @Router       /api/contagem/list [get]
func (h *CountHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListStaged(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.CountListResponse{Success: true, Itens: make([]dto.CountItemDTO, 0, len(items))}
	for _, it := range items {
		out.Itens = append(out.Itens, dto.CountItemDTO{
			ID:         it.ID,
			ProdutoID:  it.ProductID,
			Codigo:     it.ProductCode,
			Descricao:  it.ProductDescription,
			Unidade:    it.ProductUnit,
			Quantidade: it.Quantity,
		})
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalizar el conteo y promoverlo al catálogo
// @Tags         contagem
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FinalizeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/contagem/finalizar [post]
func (h *CountHandler) Finalize(c *fiber.Ctx) error {
	total, err := h.uc.Finalize(c.UserContext(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FinalizeResponse{
		Success:    true,
		TotalItens: total,
		Message:    fmt.Sprintf("Contagem finalizada: %d itens", total),
	})
}

// Report godoc
// @Summary      Hoja de conteo en PDF
// @Tags         contagem
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/contagem/relatorio [get]
func (h *CountHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	company, err := h.companies.GetByID(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if company == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Registro não encontrado"))
	}
	items, err := h.uc.ListStaged(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	doc, err := h.sheet.Generate(c.UserContext(), company, items, time.Now())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="contagem.pdf"`)
	return c.Send(doc)
}
