package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// ProductSourceLocal marks products created in this service rather than imported.
const ProductSourceLocal = "local"

// Product is a food product with nutrition values per 100 g.
// Source and ExternalID identify products imported from an external catalog.
type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null;index" json:"name"`
	Source     string    `gorm:"size:32;not null;default:'local';uniqueIndex:idx_products_source_external" json:"source"`
	ExternalID *string   `gorm:"size:128;uniqueIndex:idx_products_source_external" json:"external_id,omitempty"`
	Calories   float64   `gorm:"not null;default:0" json:"calories"`
	Protein    float64   `gorm:"not null;default:0" json:"protein"`
	Fat        float64   `gorm:"not null;default:0" json:"fat"`
	Carbs      float64   `gorm:"not null;default:0" json:"carbs"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Source == "" {
		p.Source = ProductSourceLocal
	}
	return nil
}

// Tag labels recipes as allergen, diet or preference.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Type      TagType   `gorm:"type:varchar(20);not null;index" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Recipe is a dish that plan generation may schedule.
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string             `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Instructions JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	CookingTime  int                `gorm:"not null;default:0" json:"cooking_time"`
	Calories     float64            `json:"calories"`
	Protein      float64            `json:"protein"`
	Fat          float64            `json:"fat"`
	Carbs        float64            `json:"carbs"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	Tags         []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is one product line of a recipe.
type RecipeIngredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Grams     float64   `gorm:"not null;default:0" json:"grams"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
