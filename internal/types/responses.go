package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/nutrition"
)

// UserResponse is a user profile with its computed daily target.
type UserResponse struct {
	models.User
	NutritionTarget *nutrition.NutritionTarget `json:"nutrition_target"`
}

// Exclusions is the materialized pair of exclusion sets for one user.
type Exclusions struct {
	Products []models.Product `json:"products"`
	Tags     []models.Tag     `json:"tags"`
}

// InventoryByLocation partitions a user's inventory. Every key is always present.
type InventoryByLocation struct {
	Fridge  []models.InventoryItem `json:"fridge"`
	Freezer []models.InventoryItem `json:"freezer"`
	Pantry  []models.InventoryItem `json:"pantry"`
	Other   []models.InventoryItem `json:"other"`
}

// NewInventoryByLocation returns a partition with all four buckets empty but non-nil.
func NewInventoryByLocation() *InventoryByLocation {
	return &InventoryByLocation{
		Fridge:  []models.InventoryItem{},
		Freezer: []models.InventoryItem{},
		Pantry:  []models.InventoryItem{},
		Other:   []models.InventoryItem{},
	}
}

// Add appends item to the bucket of its location.
func (b *InventoryByLocation) Add(item models.InventoryItem) {
	switch item.Location {
	case models.LocationFridge:
		b.Fridge = append(b.Fridge, item)
	case models.LocationFreezer:
		b.Freezer = append(b.Freezer, item)
	case models.LocationPantry:
		b.Pantry = append(b.Pantry, item)
	case models.LocationOther:
		b.Other = append(b.Other, item)
	default:
		b.Other = append(b.Other, item)
	}
}

// InventoryResponse is the body of the inventory list endpoint.
type InventoryResponse struct {
	Inventory *InventoryByLocation `json:"inventory"`
}

// InventorySnapshotItem is the flat view of an inventory row handed to plan generation.
type InventorySnapshotItem struct {
	ItemID        uuid.UUID       `json:"itemId"`
	ProductID     uuid.UUID       `json:"productId"`
	ProductName   string          `json:"productName"`
	QuantityGrams *float64        `json:"quantityGrams"`
	QuantityUnits *float64        `json:"quantityUnits"`
	Location      models.Location `json:"location"`
	ExpiryDate    *time.Time      `json:"expiryDate,omitempty"`
}

// TagGroups lists tags grouped by type for presentation.
type TagGroups struct {
	Allergen   []models.Tag `json:"allergen"`
	Diet       []models.Tag `json:"diet"`
	Preference []models.Tag `json:"preference"`
}

// GenerationRequest is everything the external generator receives for one run.
type GenerationRequest struct {
	UserID             uuid.UUID                 `json:"userId"`
	Targets            nutrition.NutritionTarget `json:"targets"`
	Weeks              int                       `json:"weeks"`
	AllowRepeatDays    bool                      `json:"allowRepeatDays"`
	PreferSimple       bool                      `json:"preferSimple"`
	UseInventory       bool                      `json:"useInventory"`
	ExcludedProductIDs []uuid.UUID               `json:"excludedProductIds"`
	ExcludedTagIDs     []uuid.UUID               `json:"excludedTagIds"`
	Inventory          []InventorySnapshotItem   `json:"inventory"`
	RequestedAt        time.Time                 `json:"requestedAt"`
}

// PlanSummary is what the generator reports back after storing a plan.
type PlanSummary struct {
	PlanID  uuid.UUID `json:"planId"`
	Weeks   int       `json:"weeks"`
	Days    int       `json:"days"`
	Message string    `json:"message,omitempty"`
}

// ExportResult points at an exported plan document.
type ExportResult struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HealthStatus reports dependency reachability.
type HealthStatus struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Response is the envelope of every API response.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
