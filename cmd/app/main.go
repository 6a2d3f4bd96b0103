package main

import (
	"log"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/cmd/config"
	migration "github.com/fe46t78ujiniyh8/restaurant-management-system/cmd/database/migrate"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to set up application: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
