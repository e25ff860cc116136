package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExcludedProduct marks a product the user does not want in generated plans.
type ExcludedProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_excluded_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_excluded_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ExcludedProduct) TableName() string {
	return "user_excluded_products"
}

func (e *ExcludedProduct) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ExcludedTag marks a tag whose recipes the user does not want in generated plans.
type ExcludedTag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_excluded_tag" json:"user_id"`
	TagID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_excluded_tag" json:"tag_id"`
	Tag       *Tag      `gorm:"foreignKey:TagID" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ExcludedTag) TableName() string {
	return "user_excluded_tags"
}

func (e *ExcludedTag) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
