package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/dto"
	"github.com/jhoicas/sysstock-api/pkg/jwt"
)

// Locals keys para la identidad resuelta en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalIsAdmin   = "is_admin"
	LocalIsMaster  = "is_master"
)

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token vacío"))
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token inválido o expirado"))
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCompanyID, claims.CompanyID)
		c.Locals(LocalIsAdmin, claims.IsAdmin)
		c.Locals(LocalIsMaster, claims.IsMaster)
		return c.Next()
	}
}

// RequireAdmin exige el flag admin (o master) en la sesión.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) && !IsMaster(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("requiere rol admin"))
		}
		return c.Next()
	}
}

// RequireMaster exige una sesión master (administración del directorio).
func RequireMaster() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsMaster(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("requiere rol master"))
		}
		return c.Next()
	}
}

// RequireTenant exige una sesión atada a una empresa (rechaza master, que no
// posee datos de inventario).
func RequireTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("requiere sesión de empresa"))
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto; vacío para master.
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IsAdmin devuelve el flag admin de la sesión.
func IsAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalIsAdmin).(bool)
	return v
}

// IsMaster devuelve el flag master de la sesión.
func IsMaster(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalIsMaster).(bool)
	return v
}
