package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/venuehub/comanda-api/internal/application/auth"
	"github.com/venuehub/comanda-api/internal/application/cash"
	"github.com/venuehub/comanda-api/internal/application/customer"
	"github.com/venuehub/comanda-api/internal/application/tab"
	"github.com/venuehub/comanda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OpenTabUC         *tab.OpenTabUseCase
	AddItemUC         *tab.AddItemUseCase
	SetParticipantsUC *tab.SetParticipantsUseCase
	SettleTabUC       *tab.SettleTabUseCase
	TabQueryUC        *tab.QueryUseCase
	ReceiptUC         *tab.ReceiptUseCase
	CashUC            *cash.RegisterUseCase
	CustomerUC        *customer.UseCase
	AuthUC            *auth.AuthUseCase
	JWTSecret         string
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

	// Tabs (protegido)
	tabs := protected.Group("/tabs")
	tabHandler := NewTabHandler(
		deps.OpenTabUC, deps.AddItemUC, deps.SetParticipantsUC,
		deps.SettleTabUC, deps.TabQueryUC, deps.ReceiptUC,
	)
	tabs.Post("/open", tabHandler.Open)
	tabs.Post("/items", tabHandler.AddItem)
	tabs.Post("/items/participants", tabHandler.SetParticipants)
	tabs.Post("/close", tabHandler.Close)
	tabs.Get("/:id/receipt", tabHandler.Receipt)
	tabs.Get("/:id", tabHandler.GetByID)

	// Caja (protegido)
	cashGroup := protected.Group("/cash")
	cashHandler := NewCashHandler(deps.CashUC)
	cashGroup.Post("/open", cashHandler.Open)
	cashGroup.Get("/open", cashHandler.Current)
	cashGroup.Post("/close", cashHandler.Close)

	// Clientes (protegido; la recarga de saldo exige rol admin o gerente)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/:id/credits",
		RequireRole(entity.RoleAdmin, entity.RoleGerente),
		customerHandler.AddCredits,
	)
	customers.Get("/:id/transactions", customerHandler.ListTransactions)
}
