package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/sysstock-api/internal/application/auth"
	"github.com/jhoicas/sysstock-api/internal/application/counting"
	"github.com/jhoicas/sysstock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/sysstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sysstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sysstock-api/internal/interfaces/http"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/config"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("tenancy", cfg.Tenancy.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Almacén maestro: directorio de empresas y usuarios master. En tenancy
	// compartida es también el almacén de todos los tenants.
	masterStore := postgres.NewStore(pool)

	var resolver repository.StoreResolver
	if cfg.Tenancy.Mode == config.TenancyIsolated {
		directory := postgres.NewDirectoryResolver(masterStore.Companies())
		defer directory.Close()
		resolver = directory
	} else {
		resolver = postgres.NewSharedResolver(masterStore)
	}

	authUC := auth.NewUseCase(masterStore, resolver, cfg.JWT, log)
	countUC := counting.NewUseCase(resolver, log)
	productUC := usecase.NewProductUseCase(resolver, log)
	companyUC := usecase.NewCompanyUseCase(masterStore, resolver, cfg.Tenancy, log)
	userUC := usecase.NewUserUseCase(resolver, log)
	movementUC := usecase.NewMovementUseCase(resolver)
	dashboardUC := usecase.NewDashboardUseCase(resolver)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SysStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CountUC:     countUC,
		ProductUC:   productUC,
		CompanyUC:   companyUC,
		UserUC:      userUC,
		MovementUC:  movementUC,
		DashboardUC: dashboardUC,
		CountSheet:  infrapdf.NewCountSheetGenerator(),
		MasterStore: masterStore,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
