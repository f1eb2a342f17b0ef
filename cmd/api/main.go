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

	"github.com/nmendes/servicos-api/internal/application/auth"
	"github.com/nmendes/servicos-api/internal/application/usecase"
	"github.com/nmendes/servicos-api/internal/infrastructure/localstore"
	infrapdf "github.com/nmendes/servicos-api/internal/infrastructure/pdf"
	"github.com/nmendes/servicos-api/internal/infrastructure/postgres"
	"github.com/nmendes/servicos-api/internal/infrastructure/realtime"
	httpRouter "github.com/nmendes/servicos-api/internal/interfaces/http"
	"github.com/nmendes/servicos-api/pkg/config"
	"github.com/nmendes/servicos-api/pkg/dates"
	"github.com/nmendes/servicos-api/pkg/logger"
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
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	formatter, err := dates.New(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	local, err := localstore.Open(cfg.Local.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Local.Path).Msg("almacén local")
	}
	defer local.Close()

	profileRepo := postgres.NewProfileRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	lineRepo := postgres.NewServiceProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(profileRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	brandUC := usecase.NewBrandUseCase(brandRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, formatter, log)
	submitUC := usecase.NewSubmitServiceUseCase(txRunner, productRepo, local, formatter, log)
	draftUC := usecase.NewDraftUseCase(local)
	migrationUC := usecase.NewMigrationUseCase(categoryRepo, brandRepo, productRepo, serviceRepo, lineRepo, formatter, log)

	report := infrapdf.NewServiceReportGenerator(cfg.App.Name, formatter)

	// Realtime: LISTEN en Postgres → hub en memoria → SSE
	hub := realtime.NewHub()
	listenerCtx, stopListener := context.WithCancel(ctx)
	defer stopListener()
	listener := postgres.NewListener(cfg.DB.ConnectionString(), hub, log)
	go listener.Run(listenerCtx)

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  categoryUC,
		BrandUC:     brandUC,
		ProductUC:   productUC,
		ServiceUC:   serviceUC,
		SubmitUC:    submitUC,
		DraftUC:     draftUC,
		MigrationUC: migrationUC,
		Report:      report,
		Hub:         hub,
		Local:       local,
		Log:         log,
		JWTSecret:   cfg.JWT.Secret,
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
	stopListener()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
