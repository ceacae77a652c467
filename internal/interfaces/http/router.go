package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sysstock-api/internal/application/auth"
	"github.com/jhoicas/sysstock-api/internal/application/counting"
	"github.com/jhoicas/sysstock-api/internal/application/usecase"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CountUC     *counting.UseCase
	ProductUC   *usecase.ProductUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	MovementUC  *usecase.MovementUseCase
	DashboardUC *usecase.DashboardUseCase
	CountSheet  *pdf.CountSheetGenerator
	MasterStore repository.Store
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Conteo físico (sesión de empresa)
	count := protected.Group("/contagem", RequireTenant())
	countHandler := NewCountHandler(deps.CountUC, deps.CountSheet, deps.MasterStore.Companies(), deps.Log)
	count.Post("/add", countHandler.Add)
	count.Get("/list", countHandler.List)
	count.Post("/finalizar", countHandler.Finalize)
	count.Get("/relatorio", countHandler.Report)

	// Catálogo de productos (sesión de empresa)
	products := protected.Group("/produtos", RequireTenant())
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Libro de movimientos (sesión de empresa)
	movementHandler := NewMovementHandler(deps.MovementUC, deps.Log)
	protected.Get("/movimentacoes", RequireTenant(), movementHandler.List)

	// Dashboard (sesión de empresa)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	protected.Get("/dashboard", RequireTenant(), dashboardHandler.Get)

	// Usuarios del tenant (admin)
	users := protected.Group("/usuarios", RequireTenant(), RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)

	// Directorio de empresas (master)
	companies := protected.Group("/empresas", RequireMaster())
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Log)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Put("/:id/ativo", companyHandler.SetActive)
}
