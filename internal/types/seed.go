package types

import "github.com/kimurazver67/sport-transformation-app-sub000/internal/models"

// CatalogSeed is the JSON document read by the catalog seeder.
type CatalogSeed struct {
	Products []SeedProduct `json:"products"`
	Tags     []SeedTag     `json:"tags"`
	Recipes  []SeedRecipe  `json:"recipes"`
}

// SeedProduct is keyed by Key, a stable slug stored as the external id of the "seed" source.
type SeedProduct struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

type SeedTag struct {
	Name string         `json:"name"`
	Type models.TagType `json:"type"`
}

type SeedIngredient struct {
	Product string  `json:"product"`
	Grams   float64 `json:"grams"`
}

type SeedRecipe struct {
	Name         string           `json:"name"`
	Instructions []string         `json:"instructions"`
	CookingTime  int              `json:"cookingTime"`
	Ingredients  []SeedIngredient `json:"ingredients"`
	Tags         []string         `json:"tags"`
}

// SeedResult counts rows created by a seeding run.
type SeedResult struct {
	Products int `json:"products"`
	Tags     int `json:"tags"`
	Recipes  int `json:"recipes"`
}
