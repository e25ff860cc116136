package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InventoryItem is one stocked row of a product owned by a single user.
// Several rows may reference the same product at the same location.
type InventoryItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	QuantityGrams *float64        `json:"quantity_grams"`
	QuantityUnits *float64        `json:"quantity_units"`
	Location      Location        `gorm:"type:varchar(16);not null;default:'fridge'" json:"location"`
	ExpiryDate    *datatypes.Date `json:"expiry_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
