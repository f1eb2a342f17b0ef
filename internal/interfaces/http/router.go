package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nmendes/servicos-api/internal/application/auth"
	"github.com/nmendes/servicos-api/internal/application/usecase"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/infrastructure/localstore"
	"github.com/nmendes/servicos-api/internal/infrastructure/pdf"
	"github.com/nmendes/servicos-api/internal/infrastructure/realtime"
	"github.com/nmendes/servicos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	BrandUC     *usecase.BrandUseCase
	ProductUC   *usecase.ProductUseCase
	ServiceUC   *usecase.ServiceUseCase
	SubmitUC    *usecase.SubmitServiceUseCase
	DraftUC     *usecase.DraftUseCase
	MigrationUC *usecase.MigrationUseCase
	Report      *pdf.ServiceReportGenerator
	Hub         *realtime.Hub
	Local       *localstore.Store
	Log         *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API. Lecturas para cualquier cuenta
// autenticada; escrituras de catálogo, aprobaciones y migración solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleProfessional)

	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Categorías
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", anyRole, categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Marcas
	brands := protected.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC)
	brands.Get("/", anyRole, brandHandler.List)
	brands.Post("/", adminOnly, brandHandler.Create)
	brands.Delete("/:id", adminOnly, brandHandler.Delete)

	// Productos: la lectura es de todos (la profesional los elige al
	// registrar un servicio), la escritura es de administración.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Servicios
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC, deps.SubmitUC, deps.Report, deps.Local)
	services.Post("/", anyRole, serviceHandler.Submit)
	services.Get("/", anyRole, serviceHandler.List)
	services.Get("/report", adminOnly, serviceHandler.Report)
	services.Get("/backup", anyRole, serviceHandler.Backup)
	services.Get("/:id", anyRole, serviceHandler.GetByID)
	services.Patch("/:id/status", adminOnly, serviceHandler.UpdateStatus)

	// Borradores del formulario
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Put("/", anyRole, draftHandler.Save)
	drafts.Post("/", anyRole, draftHandler.Take)
	drafts.Post("/products", anyRole, draftHandler.AppendProducts)
	drafts.Delete("/", anyRole, draftHandler.Clear)

	// Cambios del almacén (SSE)
	eventsHandler := NewEventsHandler(deps.Hub, deps.Log)
	protected.Get("/events", anyRole, eventsHandler.Stream)

	// Migración única del snapshot heredado
	migrationHandler := NewMigrationHandler(deps.MigrationUC)
	protected.Post("/admin/migration", adminOnly, migrationHandler.Run)
}
