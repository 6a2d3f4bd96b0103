package entities

type Dish struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	IsAvailable bool    `gorm:"default:true" json:"is_available"`
	ImageURL    string  `json:"image_url,omitempty"`

	Timestamp
}

// DishIngredient is one recipe entry: the quantity of an ingredient
// consumed per unit of the dish. Unique per (dish, ingredient) pair.
type DishIngredient struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	DishID       uint    `gorm:"not null;uniqueIndex:idx_dish_ingredient;constraint:OnDelete:CASCADE" json:"dish_id"`
	IngredientID uint    `gorm:"not null;uniqueIndex:idx_dish_ingredient;constraint:OnDelete:CASCADE" json:"ingredient_id"`
	Quantity     float64 `gorm:"not null" json:"quantity"`

	Dish       *Dish       `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}
