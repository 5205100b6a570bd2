package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CreateOrder *sales.CreateSaleOrderUseCase
	Queries     *sales.SaleOrderQueries
	VoidOrder   *sales.VoidSaleOrderUseCase
	ReceiptPDF  *sales.ReceiptPDFUseCase
	CounterUC   *sales.CounterUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sale orders (protegido)
	orders := protected.Group("/sale-orders")
	orderHandler := NewSaleOrderHandler(deps.CreateOrder, deps.Queries, deps.VoidOrder, deps.ReceiptPDF)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/mine", orderHandler.ListMine)
	orders.Get("/client/:clientId", orderHandler.ListByClient)
	orders.Get("/sale-point/:salePointId", orderHandler.ListBySalePoint)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/void", orderHandler.Void)
	orders.Get("/:id/pdf", orderHandler.ReceiptPDF)

	// Counters (protegido; crear y actualizar requieren rol admin)
	counters := protected.Group("/counters")
	counterHandler := NewCounterHandler(deps.CounterUC)
	adminOnly := RequireRole(entity.RoleAdmin)
	counters.Post("/", adminOnly, counterHandler.Create)
	counters.Get("/", counterHandler.List)
	counters.Get("/sale-point/:salePointId", counterHandler.ListBySalePoint)
	counters.Get("/:id", counterHandler.GetByID)
	counters.Put("/:id", adminOnly, counterHandler.Update)
}
