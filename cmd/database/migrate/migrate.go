package migration

import (
	"errors"
	"fmt"
	"log"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Table{}); err != nil {
		log.Fatalf("Error migrating table database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Dish{}); err != nil {
		log.Fatalf("Error migrating dish database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DishIngredient{}); err != nil {
		log.Fatalf("Error migrating dish ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.InventoryLog{}); err != nil {
		log.Fatalf("Error migrating inventory log database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Order{}); err != nil {
		log.Fatalf("Error migrating order database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.OrderItem{}); err != nil {
		log.Fatalf("Error migrating order item database: %v", err)
		return err
	}

	if err := Seed(db); err != nil {
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

// Seed loads the starter menu, pantry, floor plan and the default
// manager account on an empty database. Re-running it against a
// populated database is a no-op.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&entities.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		manager := entities.User{
			Name:     "Manager",
			Email:    "manager@restaurant.local",
			Password: string(hashed),
			Role:     domain.RoleManager,
		}
		if err := db.Create(&manager).Error; err != nil {
			return err
		}
	}

	var dishCount int64
	if err := db.Model(&entities.Dish{}).Count(&dishCount).Error; err != nil {
		return err
	}
	if dishCount == 0 {
		dishes := []entities.Dish{
			{Name: "Kung Pao Chicken", Price: 38.0, Category: "Sichuan Cuisine", Description: "Classic Sichuan dish, spicy and fragrant", IsAvailable: true},
			{Name: "Yu-Shiang Shredded Pork", Price: 32.0, Category: "Sichuan Cuisine", Description: "Yu-Shiang flavor, perfect with rice", IsAvailable: true},
			{Name: "Mapo Tofu", Price: 28.0, Category: "Sichuan Cuisine", Description: "Spicy and fragrant, tender tofu", IsAvailable: true},
			{Name: "Twice-Cooked Pork", Price: 36.0, Category: "Sichuan Cuisine", Description: "Fat but not greasy, spicy and delicious", IsAvailable: true},
			{Name: "Boiled Fish with Spicy Sauce", Price: 48.0, Category: "Sichuan Cuisine", Description: "Tender fish, spicy and fragrant", IsAvailable: true},
		}
		if err := db.Create(&dishes).Error; err != nil {
			return err
		}
	}

	var ingredientCount int64
	if err := db.Model(&entities.Ingredient{}).Count(&ingredientCount).Error; err != nil {
		return err
	}
	if ingredientCount == 0 {
		ingredients := []entities.Ingredient{
			{Name: "Chicken", Unit: "kg", Stock: 50, LowStockThreshold: 10},
			{Name: "Pork", Unit: "kg", Stock: 40, LowStockThreshold: 5},
			{Name: "Tofu", Unit: "kg", Stock: 30, LowStockThreshold: 5},
			{Name: "Green Pepper", Unit: "kg", Stock: 20, LowStockThreshold: 5},
			{Name: "Onion", Unit: "kg", Stock: 15, LowStockThreshold: 3},
			{Name: "Chili Pepper", Unit: "kg", Stock: 10, LowStockThreshold: 2},
			{Name: "Peanuts", Unit: "kg", Stock: 10, LowStockThreshold: 2},
			{Name: "Fish Fillet", Unit: "kg", Stock: 20, LowStockThreshold: 5},
			{Name: "Garlic", Unit: "kg", Stock: 5, LowStockThreshold: 1},
			{Name: "Ginger", Unit: "kg", Stock: 5, LowStockThreshold: 1},
		}
		if err := db.Create(&ingredients).Error; err != nil {
			return err
		}
	}

	var recipeCount int64
	if err := db.Model(&entities.DishIngredient{}).Count(&recipeCount).Error; err != nil {
		return err
	}
	if recipeCount == 0 {
		recipes := []entities.DishIngredient{
			{DishID: 1, IngredientID: 1, Quantity: 0.3},
			{DishID: 1, IngredientID: 4, Quantity: 0.1},
			{DishID: 1, IngredientID: 5, Quantity: 0.05},
			{DishID: 1, IngredientID: 7, Quantity: 0.05},
			{DishID: 2, IngredientID: 2, Quantity: 0.3},
			{DishID: 2, IngredientID: 4, Quantity: 0.1},
			{DishID: 2, IngredientID: 5, Quantity: 0.05},
			{DishID: 2, IngredientID: 9, Quantity: 0.02},
			{DishID: 2, IngredientID: 10, Quantity: 0.01},
			{DishID: 3, IngredientID: 3, Quantity: 0.25},
			{DishID: 3, IngredientID: 2, Quantity: 0.05},
			{DishID: 3, IngredientID: 6, Quantity: 0.02},
			{DishID: 4, IngredientID: 2, Quantity: 0.3},
			{DishID: 4, IngredientID: 4, Quantity: 0.1},
			{DishID: 4, IngredientID: 9, Quantity: 0.02},
			{DishID: 4, IngredientID: 10, Quantity: 0.01},
			{DishID: 5, IngredientID: 8, Quantity: 0.3},
			{DishID: 5, IngredientID: 4, Quantity: 0.1},
			{DishID: 5, IngredientID: 9, Quantity: 0.02},
			{DishID: 5, IngredientID: 10, Quantity: 0.01},
			{DishID: 5, IngredientID: 6, Quantity: 0.02},
		}
		if err := db.Create(&recipes).Error; err != nil {
			return err
		}
	}

	var tableCount int64
	if err := db.Model(&entities.Table{}).Count(&tableCount).Error; err != nil {
		return err
	}
	if tableCount == 0 {
		tables := []entities.Table{
			{TableNumber: "Table 1", Capacity: 4, Status: entities.TableFree},
			{TableNumber: "Table 2", Capacity: 6, Status: entities.TableFree},
			{TableNumber: "Table 3", Capacity: 2, Status: entities.TableFree},
			{TableNumber: "Table 4", Capacity: 8, Status: entities.TableFree},
			{TableNumber: "Table 5", Capacity: 4, Status: entities.TableFree},
		}
		if err := db.Create(&tables).Error; err != nil {
			return err
		}
	}

	return seedPremadeDishes(db)
}

// seedPremadeDishes adds the heat-and-serve menu: each premade dish
// consumes exactly one bag of its dedicated meal kit ingredient.
func seedPremadeDishes(db *gorm.DB) error {
	premade := []struct {
		dishName  string
		price     float64
		kitName   string
		stock     float64
		threshold float64
	}{
		{"Taiwanese Braised Pork Rice (Premade)", 25.0, "Braised Pork Meal Kit", 50, 5},
		{"Braised Beef Rice (Premade)", 28.0, "Braised Beef Meal Kit", 40, 5},
		{"Italian Meat Sauce Pasta (Premade)", 26.0, "Meat Sauce Pasta Combo Kit", 30, 5},
		{"Cantonese Sausage Fried Rice (Premade)", 22.0, "Sausage Fried Rice Meal Kit", 50, 10},
	}

	for _, item := range premade {
		var kit entities.Ingredient
		err := db.Where("name = ?", item.kitName).First(&kit).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			kit = entities.Ingredient{
				Name:              item.kitName,
				Unit:              "Bag",
				Stock:             item.stock,
				LowStockThreshold: item.threshold,
			}
			if err := db.Create(&kit).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var dish entities.Dish
		err = db.Where("name = ?", item.dishName).First(&dish).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dish = entities.Dish{
				Name:        item.dishName,
				Price:       item.price,
				Category:    "Premade Dishes",
				Description: "Quick and delicious, ready to eat after heating",
				IsAvailable: true,
			}
			if err := db.Create(&dish).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var entry entities.DishIngredient
		err = db.Where("dish_id = ? AND ingredient_id = ?", dish.ID, kit.ID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = entities.DishIngredient{
				DishID:       dish.ID,
				IngredientID: kit.ID,
				Quantity:     1.0,
			}
			if err := db.Create(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
