package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/internal/application/usecase"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// ProductHandler CRUD del catálogo de productos (protegido).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

func productResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Codigo:       p.Code,
		CodigoBarras: p.Barcode,
		Descricao:    p.Description,
		Unidade:      p.Unit,
		Quantidade:   p.Quantity,
		PrecoCusto:   p.CostPrice,
		PrecoVenda:   p.SalePrice,
		Ativo:        p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear producto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produtos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	product, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), usecase.CreateProductInput{
		Code:        in.Codigo,
		Barcode:     in.CodigoBarras,
		Description: in.Descricao,
		Unit:        in.Unidade,
		Quantity:    in.Quantidade.Decimal,
		CostPrice:   in.PrecoCusto.Decimal,
		SalePrice:   in.PrecoVenda.Decimal,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(productResponse(product))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(productResponse(product))
}

// List godoc
// @Summary      Listar productos activos
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por código, barras o descripción"
// @Param        limit   query  int     false  "Límite"  default(100)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/produtos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(c.UserContext(), GetCompanyID(c), c.Query("q"), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.ProductListResponse{Success: true, Itens: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Itens = append(out.Itens, productResponse(p))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	update := usecase.UpdateProductInput{
		Code:        in.Codigo,
		Barcode:     in.CodigoBarras,
		Description: in.Descricao,
		Unit:        in.Unidade,
	}
	if in.Quantidade != nil {
		update.Quantity = &in.Quantidade.Decimal
	}
	if in.PrecoCusto != nil {
		update.CostPrice = &in.PrecoCusto.Decimal
	}
	if in.PrecoVenda != nil {
		update.SalePrice = &in.PrecoVenda.Decimal
	}
	product, err := h.uc.Update(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), update)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(productResponse(product))
}

// Delete godoc
// @Summary      Desactivar producto (soft delete)
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Produto desativado"})
}
