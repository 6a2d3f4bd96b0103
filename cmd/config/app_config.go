package config

import (
	"os"
	"time"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/api/handlers"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/api/routes"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/middleware"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/utils"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/utils/storage"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/catalog"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/checkout"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/inventory"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/jwt"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/order"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/table"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Shanghai",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	tableRepository := table.NewTableRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	orderRepository := order.NewOrderRepository(db)
	checkoutRepository := checkout.NewCheckoutRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	tableService := table.NewTableService(tableRepository)
	catalogService := catalog.NewCatalogService(catalogRepository, s3)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	orderService := order.NewOrderService(orderRepository, tableRepository, catalogRepository, inventoryService)
	checkoutService := checkout.NewCheckoutService(checkoutRepository, tableRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	tableHandler := handlers.NewTableHandler(tableService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, userService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, userService, validator)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		TableHandler:     tableHandler,
		CatalogHandler:   catalogHandler,
		InventoryHandler: inventoryHandler,
		OrderHandler:     orderHandler,
		CheckoutHandler:  checkoutHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
