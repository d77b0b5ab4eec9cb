package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sonu0702/cozy-api/internal/application/auth"
	"github.com/sonu0702/cozy-api/internal/application/billing"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	TenancyUC   *tenancy.UseCase
	InvoiceUC   *billing.UseCase
	PDFUC       *billing.PDFUseCase
	ProductUC   *usecase.ProductUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/profile", authHandler.Profile)

	// Shops + tenancy + default shop
	shopHandler := NewShopHandler(deps.TenancyUC)
	shops := protected.Group("/shops")
	shops.Post("/", shopHandler.Create)
	shops.Get("/", shopHandler.List)
	shops.Get("/:id", shopHandler.GetByID)
	shops.Put("/:id", shopHandler.Update)
	shops.Delete("/:id", shopHandler.Delete)
	shops.Post("/:id/users", shopHandler.AssociateUser)
	shops.Get("/:id/users", shopHandler.ListUsers)
	shops.Put("/:id/users/:userId", shopHandler.UpdateUserRole)
	shops.Delete("/:id/users/:userId", shopHandler.RemoveUser)

	users := protected.Group("/users")
	users.Post("/default-shop", shopHandler.SetDefaultShop)
	users.Get("/default-shop", shopHandler.GetDefaultShop)

	// Invoices (shop-scoped creation/listing/search, id-scoped the rest)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	shops.Post("/:id/invoices", invoiceHandler.Create)
	shops.Get("/:id/invoices", invoiceHandler.List)
	shops.Get("/:id/invoices/search/bill-to", invoiceHandler.SearchBillTo)
	shops.Get("/:id/invoices/search/ship-to", invoiceHandler.SearchShipTo)

	invoices := protected.Group("/invoices")
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/items", invoiceHandler.AddItem)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	items := protected.Group("/invoice-items")
	items.Put("/:id", invoiceHandler.UpdateItem)
	items.Delete("/:id", invoiceHandler.DeleteItem)

	// Products (catalog)
	productHandler := NewProductHandler(deps.ProductUC)
	shops.Post("/:id/products", productHandler.Create)
	shops.Post("/:id/products/bulk", productHandler.BulkCreate)
	shops.Get("/:id/products", productHandler.List)
	shops.Get("/:id/products/search", productHandler.Search)

	products := protected.Group("/products")
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Analytics
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	shops.Get("/:id/analytics", analyticsHandler.Dashboard)
}
