package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tpv-api/internal/application/auth"
	"github.com/jhoicas/Tpv-api/internal/application/usecase"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CartUC       *usecase.CartUseCase
	CheckoutUC   *usecase.CheckoutUseCase
	ReportUC     *usecase.ReportUseCase
	OrderUC      *usecase.OrderUseCase
	CategoryUC   *usecase.CategoryUseCase
	AdjustmentUC *usecase.AdjustmentUseCase
	ReportPDF    usecase.ReportPDFGenerator
	JWTSecret    string
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

	// Carrito de venta (protegido)
	cart := protected.Group("/cart/sessions")
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Post("/", cartHandler.OpenSession)
	cart.Get("/:session", cartHandler.Get)
	cart.Delete("/:session", cartHandler.CloseSession)
	cart.Post("/:session/items", cartHandler.AddItem)
	cart.Delete("/:session/items", cartHandler.Clear)
	cart.Delete("/:session/items/:barcode", cartHandler.RemoveItem)
	cart.Put("/:session/items/:barcode/quantity", cartHandler.SetQuantity)
	cart.Put("/:session/items/:barcode/price", cartHandler.SetPrice)

	// Cierre de venta (protegido)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	protected.Post("/checkout", checkoutHandler.Checkout)

	// Informes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ReportPDF)
	reports.Get("/sales", reportHandler.SalesReport)
	reports.Get("/sales/pdf", reportHandler.SalesReportPDF)

	// Pedidos cerrados (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/archive", orderHandler.Archive)
	orders.Get("/:id/facturae", orderHandler.ExportFacturae)

	// Categorías (lectura para todos; escritura solo admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	adminOnly := RequireRole(entity.RoleAdmin)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Ajustes de inventario (protegido, solo admin)
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	protected.Post("/adjustments", adminOnly, adjustmentHandler.Create)
}
