package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger     LedgerService
	Query      StockQueryService
	Warehouses repository.WarehouseRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Query)
	stockGroup.Post("/create-transfer", stockHandler.CreateTransfer)
	stockGroup.Get("/all-transfer", stockHandler.ListTransfers)
	stockGroup.Patch("/complete-transfer/:id", stockHandler.CompleteTransfer)
	stockGroup.Post("/withdraw", stockHandler.Withdraw)
	stockGroup.Get("/view", stockHandler.ListStock)

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.Warehouses)
	warehouses.Get("/", warehouseHandler.List)
}
