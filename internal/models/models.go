package models

// All lists every persisted model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Tag{},
		&Recipe{},
		&RecipeIngredient{},
		&ExcludedProduct{},
		&ExcludedTag{},
		&InventoryItem{},
		&MealPlan{},
		&MealDay{},
		&Meal{},
	}
}
