package routes

import (
	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/api/handlers"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/middleware"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	TableHandler     handlers.TableHandler
	CatalogHandler   handlers.CatalogHandler
	InventoryHandler handlers.InventoryHandler
	OrderHandler     handlers.OrderHandler
	CheckoutHandler  handlers.CheckoutHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Tables()
	c.Dishes()
	c.Ingredients()
	c.Orders()
	c.Checkout()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
	}
}

func (c *Config) Tables() {
	tables := c.App.Group("/api/v1/tables", c.Middleware.AuthMiddleware(c.JWTService))
	{
		tables.Post("", c.TableHandler.CreateTable)
		tables.Get("", c.TableHandler.GetTables)
		tables.Patch("/:id/status", c.TableHandler.UpdateTableStatus)
		tables.Delete("/:id", c.Middleware.RequireRole(domain.RoleManager), c.TableHandler.DeleteTable)

		tables.Get("/:tableId/orders", c.OrderHandler.GetOrdersForTable)
	}
}

func (c *Config) Dishes() {
	dishes := c.App.Group("/api/v1/dishes", c.Middleware.AuthMiddleware(c.JWTService))
	{
		dishes.Post("", c.CatalogHandler.CreateDish)
		dishes.Get("", c.CatalogHandler.GetDishes)
		dishes.Get("/:id", c.CatalogHandler.GetDish)
		dishes.Put("/:id", c.CatalogHandler.UpdateDish)
		dishes.Post("/:id/image", c.CatalogHandler.UploadDishImage)

		dishes.Get("/:id/recipe", c.CatalogHandler.GetRecipe)
		dishes.Put("/:id/recipe", c.CatalogHandler.SetRecipeEntry)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))
	{
		ingredients.Post("", c.InventoryHandler.CreateIngredient)
		ingredients.Get("", c.InventoryHandler.GetIngredients)
		ingredients.Delete("/:id", c.Middleware.RequireRole(domain.RoleManager), c.InventoryHandler.DeleteIngredient)
		ingredients.Patch("/:id/stock", c.InventoryHandler.AdjustStock)
		ingredients.Post("/:id/restock", c.InventoryHandler.Restock)
		ingredients.Get("/logs", c.InventoryHandler.GetInventoryLogs)
		ingredients.Post("/low-stock-alert", c.InventoryHandler.SendLowStockAlert)
	}
}

func (c *Config) Orders() {
	orders := c.App.Group("/api/v1/orders", c.Middleware.AuthMiddleware(c.JWTService))
	{
		orders.Post("", c.OrderHandler.CreateOrder)
		orders.Post("/:id/items", c.OrderHandler.AddItem)
		orders.Delete("/items/:itemId", c.OrderHandler.RemoveItem)
		orders.Post("/:id/submit", c.OrderHandler.SubmitOrder)
		orders.Post("/items/:itemId/start", c.OrderHandler.StartPreparation)
		orders.Post("/items/:itemId/complete", c.OrderHandler.CompleteItem)

		orders.Get("/kitchen-queue", c.OrderHandler.GetKitchenQueue)
	}
}

func (c *Config) Checkout() {
	checkout := c.App.Group("/api/v1/checkout", c.Middleware.AuthMiddleware(c.JWTService))
	{
		checkout.Post("", c.CheckoutHandler.Checkout)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
