package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/internal/application/usecase"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// UserHandler administración de usuarios del tenant (solo admin).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

func userResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Usuario:   u.Username,
		Nome:      u.Name,
		IsAdmin:   u.IsAdmin,
		IsMaster:  u.IsMaster,
		Ativo:     u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear usuario del tenant
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	user, err := h.uc.Create(c.UserContext(), GetCompanyID(c), usecase.CreateUserInput{
		Username: in.Usuario,
		Name:     in.Nome,
		Password: in.Senha,
		IsAdmin:  in.IsAdmin,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

// List godoc
// @Summary      Listar usuarios del tenant
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.UserListResponse{Success: true, Itens: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Itens = append(out.Itens, userResponse(u))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario del tenant
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	user, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), usecase.UpdateUserInput{
		Username: in.Usuario,
		Name:     in.Nome,
		Password: in.Senha,
		IsAdmin:  in.IsAdmin,
		Active:   in.Ativo,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(userResponse(user))
}
