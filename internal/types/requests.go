package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
)

// UpdateProfileRequest carries the profile fields the KBJU target depends on.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	StartWeight *float64     `json:"startWeight"`
	Goal        *models.Goal `json:"goal"`
}

// AddInventoryItem describes a new inventory row.
type AddInventoryItem struct {
	ProductID     uuid.UUID
	QuantityGrams *float64
	QuantityUnits *float64
	Location      models.Location
	ExpiryDate    *time.Time
}

// ImportProductRequest materializes an external catalog product locally.
type ImportProductRequest struct {
	Source     string  `json:"source" binding:"required"`
	ExternalID string  `json:"externalId" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Fat        float64 `json:"fat"`
	Carbs      float64 `json:"carbs"`
}

// GenerateOptions are the user-facing switches of meal plan generation.
type GenerateOptions struct {
	Weeks           int  `json:"weeks"`
	AllowRepeatDays bool `json:"allowRepeatDays"`
	PreferSimple    bool `json:"preferSimple"`
	UseInventory    bool `json:"useInventory"`
}
