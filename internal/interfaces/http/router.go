package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockfacil/kiosco-pos/internal/application/auth"
	"github.com/stockfacil/kiosco-pos/internal/application/cash"
	"github.com/stockfacil/kiosco-pos/internal/application/catalog"
	"github.com/stockfacil/kiosco-pos/internal/application/registration"
	"github.com/stockfacil/kiosco-pos/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CatalogUC      *catalog.CatalogUseCase
	CommitSaleUC   *sales.CommitSaleUseCase
	CashUC         *cash.CashUseCase
	RegistrationUC *registration.RegistrationUseCase
	JWTSecret      string
	AllowedOrigins []string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(OriginGuard(deps.AllowedOrigins))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Registro (requiere bearer token del proveedor de identidad; lo valida el caso de uso)
	registrationHandler := NewRegistrationHandler(deps.RegistrationUC)
	regGroup := api.Group("/registration")
	regGroup.Post("/employer", registrationHandler.RegisterEmployer)
	regGroup.Post("/email-verified", registrationHandler.MarkEmailVerified)

	// Rutas protegidas: token válido + identidad resuelta contra la base
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ContextMiddleware(deps.AuthUC))

	protected.Get("/auth/me", authHandler.Me)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Patch("/:id/stock", productHandler.AdjustStock)
	products.Put("/:id/stock", productHandler.SetStock)

	// Ventas
	saleHandler := NewSaleHandler(deps.CommitSaleUC)
	protected.Post("/sales", saleHandler.Commit)

	// Caja
	cashGroup := protected.Group("/cash")
	cashHandler := NewCashHandler(deps.CashUC)
	cashGroup.Get("/today", cashHandler.Today)
	cashGroup.Post("/close", cashHandler.Close)
	cashGroup.Get("/closures/:id/report", cashHandler.Report)

	// Empleados
	protected.Post("/employees/:id/permission", registrationHandler.UpdatePermission)
}
