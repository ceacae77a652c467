package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/internal/application/usecase"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// CompanyHandler administración del directorio de empresas (solo master).
type CompanyHandler struct {
	uc  *usecase.CompanyUseCase
	log *logger.Logger
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, log: log}
}

func companyResponse(co *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        co.ID,
		Tag:       co.Tag,
		Descricao: co.Name,
		Ativo:     co.Active,
		CreatedAt: co.CreatedAt,
		UpdatedAt: co.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear empresa con su admin inicial
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa y su admin"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/empresas [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	input := usecase.CreateCompanyInput{
		Tag:           in.Tag,
		Name:          in.Descricao,
		AdminUsername: in.AdminUsuario,
		AdminName:     in.AdminNome,
		AdminPassword: in.AdminSenha,
	}
	if in.DBHost != "" {
		input.Conn = &entity.StoreConnection{
			Host:     in.DBHost,
			Port:     in.DBPort,
			User:     in.DBUser,
			Password: in.DBPassword,
			DBName:   in.DBName,
			SSLMode:  in.DBSSLMode,
		}
	}
	company, err := h.uc.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(companyResponse(company))
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(companyResponse(company))
}

// List godoc
// @Summary      Listar empresas
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /api/empresas [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	companies, err := h.uc.List(c.UserContext(), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.CompanyListResponse{Success: true, Itens: make([]dto.CompanyResponse, 0, len(companies))}
	for _, co := range companies {
		out.Itens = append(out.Itens, companyResponse(co))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tag y descripción de la empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	company, err := h.uc.Update(c.UserContext(), c.Params("id"), in.Tag, in.Descricao)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(companyResponse(company))
}

// SetActive godoc
// @Summary      Activar o desactivar empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  object{ativo=bool}  true  "Nuevo estado"
// @Success      200   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/empresas/{id}/ativo [put]
func (h *CompanyHandler) SetActive(c *fiber.Ctx) error {
	var in struct {
		Ativo bool `json:"ativo"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	if err := h.uc.SetActive(c.UserContext(), c.Params("id"), in.Ativo); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Empresa atualizada"})
}
