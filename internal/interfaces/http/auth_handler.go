package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/auth"
	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// AuthHandler maneja el login (público).
type AuthHandler struct {
	uc  *auth.UseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Login de usuario (tenant o master)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales: tag de empresa (o master), usuario y contraseña"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Dados inválidos"))
	}
	session, err := h.uc.Login(c.UserContext(), in.Empresa, in.Usuario, in.Senha)
	if err != nil {
		return respondError(c, h.log, err)
	}

	resp := dto.LoginResponse{
		Success: true,
		Token:   session.Token,
		User: dto.UserResponse{
			ID:        session.User.ID,
			Usuario:   session.User.Username,
			Nome:      session.User.Name,
			IsAdmin:   session.User.IsAdmin,
			IsMaster:  session.User.IsMaster,
			Ativo:     session.User.Active,
			CreatedAt: session.User.CreatedAt,
			UpdatedAt: session.User.UpdatedAt,
		},
	}
	if session.Company != nil {
		resp.Empresa = session.Company.Tag
	}
	return c.JSON(resp)
}
