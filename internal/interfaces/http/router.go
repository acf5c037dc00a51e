package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin/internal/application/auth"
	"github.com/jhoicas/shop-admin/internal/application/billing"
	"github.com/jhoicas/shop-admin/internal/application/inventory"
	"github.com/jhoicas/shop-admin/internal/application/reporting"
	"github.com/jhoicas/shop-admin/internal/application/sales"
	"github.com/jhoicas/shop-admin/internal/application/settings"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	InventoryUC  *inventory.UseCase
	SalesUC      *sales.UseCase
	ReportUC     *reporting.UseCase
	PDFUC        *billing.PDFUseCase
	LogoUC       *settings.LogoUseCase
	JWTSecret    string
	// StaticDir carpeta de logos servida bajo StaticPrefix. Vacío: no se sirve.
	StaticDir    string
	StaticPrefix string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.StaticDir != "" {
		app.Static(deps.StaticPrefix, deps.StaticDir)
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	ownerOnly := RequireRole(entity.RoleOwner)
	anyRole := RequireRole(entity.RoleOwner, entity.RoleStaff)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/staff", ownerOnly, authHandler.CreateStaff)

	// Inventario
	itemHandler := NewItemHandler(deps.InventoryUC)
	items := protected.Group("/items", anyRole)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Post("/:id/restock", itemHandler.Restock)
	items.Get("/:id/transactions", itemHandler.Transactions)

	// Ventas y facturas
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales", anyRole)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.Get)

	invoiceHandler := NewInvoiceHandler(deps.PDFUC)
	protected.Get("/invoices/:saleId", anyRole, invoiceHandler.Download)

	// Dashboard y reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/dashboard", anyRole, reportHandler.Dashboard)
	protected.Post("/reports/sales", ownerOnly, reportHandler.SalesHistory)

	// Ajustes
	settingsHandler := NewSettingsHandler(deps.LogoUC)
	protected.Post("/settings/logo", ownerOnly, settingsHandler.UploadLogo)
}
