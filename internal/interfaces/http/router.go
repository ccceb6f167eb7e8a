package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/almacen-api/internal/application/auth"
	"github.com/almacen-pro/almacen-api/internal/application/inventory"
	"github.com/almacen-pro/almacen-api/internal/application/purchase"
	"github.com/almacen-pro/almacen-api/internal/application/report"
	"github.com/almacen-pro/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	StockUC    *inventory.StockUseCase
	PurchaseUC *purchase.PurchaseUseCase
	ReportUC   *report.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth por magic link (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/request-link", authHandler.RequestLink)
	authGroup.Get("/validate", authHandler.Validate)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	supervisorUp := RequireRole(entity.RoleSupervisor, entity.RoleAdmin)

	// Inventario (protegido; la importación masiva sólo admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	invGroup.Post("/entries", inventoryHandler.RecordEntry)
	invGroup.Post("/entries/bulk", adminOnly, inventoryHandler.BulkImport)
	invGroup.Post("/exits", inventoryHandler.RecordExit)
	invGroup.Get("/items/:id/stock", inventoryHandler.GetStock)
	invGroup.Get("/items/:id/history", inventoryHandler.GetHistory)

	// Compras (protegido; la decisión y los borradores sólo admin)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/requests", purchaseHandler.CreateRequest)
	purchases.Get("/requests", supervisorUp, purchaseHandler.ListRequests)
	purchases.Post("/requests/:id/decision", adminOnly, purchaseHandler.DecideRequest)
	purchases.Post("/orders/submit", supervisorUp, purchaseHandler.SubmitOrder)
	purchases.Get("/drafts/:id", adminOnly, purchaseHandler.GetDraft)
	purchases.Post("/drafts/:id/approve", adminOnly, purchaseHandler.ApproveDraft)
	purchases.Post("/drafts/:id/reject", adminOnly, purchaseHandler.RejectDraft)
	purchases.Get("/providers", supervisorUp, purchaseHandler.ListProviders)

	// Reportes (supervisor o admin)
	reports := protected.Group("/reports", supervisorUp)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/planning", reportHandler.Planning)
}
