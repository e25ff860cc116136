package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultQuantityGrams is stored when an item is added without any quantity.
const DefaultQuantityGrams = 500

// InventoryService is the per-user ledger of stocked products.
type InventoryService struct {
	db *gorm.DB
}

var _ IInventoryService = (*InventoryService)(nil)

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// AddItem always inserts a new row, even when the same product is already
// stocked at the same location.
func (s *InventoryService) AddItem(ctx context.Context, userID uuid.UUID, req types.AddInventoryItem) (*models.InventoryItem, error) {
	location := req.Location
	if location == "" {
		location = models.LocationFridge
	}
	if !location.IsValid() {
		return nil, NewValidationError("location", "must be one of fridge, freezer, pantry, other")
	}
	if !finiteOrNil(req.QuantityGrams) {
		return nil, NewValidationError("quantityGrams", "must be a finite number")
	}
	if !finiteOrNil(req.QuantityUnits) {
		return nil, NewValidationError("quantityUnits", "must be a finite number")
	}
	if err := requireRow(ctx, s.db, &models.User{}, userID, "user"); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, s.db, &models.Product{}, req.ProductID, "product"); err != nil {
		return nil, err
	}

	item := models.InventoryItem{
		UserID:        userID,
		ProductID:     req.ProductID,
		QuantityGrams: clampQuantity(req.QuantityGrams),
		QuantityUnits: clampQuantity(req.QuantityUnits),
		Location:      location,
	}
	if item.QuantityGrams == nil && item.QuantityUnits == nil {
		g := float64(DefaultQuantityGrams)
		item.QuantityGrams = &g
	}
	if req.ExpiryDate != nil {
		d := datatypes.Date(*req.ExpiryDate)
		item.ExpiryDate = &d
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add inventory item: %w", err)
	}
	return s.getItem(ctx, userID, item.ID)
}

// UpdateItemQuantity replaces the stored grams. Negative values become 0.
// Concurrent updates are last-writer-wins.
func (s *InventoryService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, grams float64) (*models.InventoryItem, error) {
	if math.IsNaN(grams) || math.IsInf(grams, 0) {
		return nil, NewValidationError("quantityGrams", "must be a finite number")
	}
	grams = math.Max(grams, 0)

	result := s.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]interface{}{
			"quantity_grams": grams,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("inventory item %s: %w", itemID, ErrNotFound)
	}
	return s.getItem(ctx, userID, itemID)
}

// DeleteItem removes the row. Deleting an absent item reports ErrNotFound and changes nothing.
func (s *InventoryService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.InventoryItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("inventory item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

func (s *InventoryService) ListInventory(ctx context.Context, userID uuid.UUID) (*types.InventoryByLocation, error) {
	items, err := s.list(ctx, userID, "created_at DESC, id")
	if err != nil {
		return nil, err
	}

	out := types.NewInventoryByLocation()
	for _, item := range items {
		out.Add(item)
	}
	return out, nil
}

// Snapshot is the flat inventory handed to plan generation, oldest first.
func (s *InventoryService) Snapshot(ctx context.Context, userID uuid.UUID) ([]types.InventorySnapshotItem, error) {
	items, err := s.list(ctx, userID, "created_at, id")
	if err != nil {
		return nil, err
	}

	snapshot := make([]types.InventorySnapshotItem, 0, len(items))
	for _, item := range items {
		entry := types.InventorySnapshotItem{
			ItemID:        item.ID,
			ProductID:     item.ProductID,
			QuantityGrams: item.QuantityGrams,
			QuantityUnits: item.QuantityUnits,
			Location:      item.Location,
		}
		if item.Product != nil {
			entry.ProductName = item.Product.Name
		}
		if item.ExpiryDate != nil {
			t := time.Time(*item.ExpiryDate)
			entry.ExpiryDate = &t
		}
		snapshot = append(snapshot, entry)
	}
	return snapshot, nil
}

func (s *InventoryService) list(ctx context.Context, userID uuid.UUID, order string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).
		Order(order).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (s *InventoryService) getItem(ctx context.Context, userID, itemID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.db.WithContext(ctx).Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("inventory item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load inventory item: %w", err)
	}
	return &item, nil
}

func clampQuantity(q *float64) *float64 {
	if q == nil {
		return nil
	}
	v := *q
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	return &v
}

func finiteOrNil(q *float64) bool {
	return q == nil || !math.IsInf(*q, 0)
}
