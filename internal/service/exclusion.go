package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/nutrition"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExclusionService maintains each user's excluded products and excluded tags.
// Both sets only grow by add and shrink by remove; adds and removes are idempotent.
type ExclusionService struct {
	db *gorm.DB
}

var _ IExclusionService = (*ExclusionService)(nil)

func NewExclusionService(db *gorm.DB) *ExclusionService {
	return &ExclusionService{db: db}
}

func (s *ExclusionService) AddProductExclusion(ctx context.Context, userID, productID uuid.UUID) (*models.ExcludedProduct, error) {
	if err := requireRow(ctx, s.db, &models.User{}, userID, "user"); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, s.db, &models.Product{}, productID, "product"); err != nil {
		return nil, err
	}

	row := models.ExcludedProduct{UserID: userID, ProductID: productID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add product exclusion: %w", err)
	}

	var stored models.ExcludedProduct
	err = s.db.WithContext(ctx).Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product exclusion: %w", err)
	}
	return &stored, nil
}

func (s *ExclusionService) RemoveProductExclusion(ctx context.Context, userID, productID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.ExcludedProduct{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove product exclusion: %w", err)
	}
	return nil
}

// ToggleProductExclusion flips the exclusion and reports whether the product is now excluded.
func (s *ExclusionService) ToggleProductExclusion(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	exists, err := s.exists(ctx, &models.ExcludedProduct{}, "product_id", userID, productID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, s.RemoveProductExclusion(ctx, userID, productID)
	}
	if _, err := s.AddProductExclusion(ctx, userID, productID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ExclusionService) AddTagExclusion(ctx context.Context, userID, tagID uuid.UUID) (*models.ExcludedTag, error) {
	if err := requireRow(ctx, s.db, &models.User{}, userID, "user"); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, s.db, &models.Tag{}, tagID, "tag"); err != nil {
		return nil, err
	}

	row := models.ExcludedTag{UserID: userID, TagID: tagID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add tag exclusion: %w", err)
	}

	var stored models.ExcludedTag
	err = s.db.WithContext(ctx).Preload("Tag").
		Where("user_id = ? AND tag_id = ?", userID, tagID).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tag exclusion: %w", err)
	}
	return &stored, nil
}

func (s *ExclusionService) RemoveTagExclusion(ctx context.Context, userID, tagID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND tag_id = ?", userID, tagID).
		Delete(&models.ExcludedTag{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove tag exclusion: %w", err)
	}
	return nil
}

func (s *ExclusionService) ToggleTagExclusion(ctx context.Context, userID, tagID uuid.UUID) (bool, error) {
	exists, err := s.exists(ctx, &models.ExcludedTag{}, "tag_id", userID, tagID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, s.RemoveTagExclusion(ctx, userID, tagID)
	}
	if _, err := s.AddTagExclusion(ctx, userID, tagID); err != nil {
		return false, err
	}
	return true, nil
}

// ListExclusions returns both sets joined with their display data, ordered by name.
func (s *ExclusionService) ListExclusions(ctx context.Context, userID uuid.UUID) (*types.Exclusions, error) {
	out := &types.Exclusions{
		Products: []models.Product{},
		Tags:     []models.Tag{},
	}

	err := s.db.WithContext(ctx).Select("products.*").
		Joins("JOIN user_excluded_products ep ON ep.product_id = products.id").
		Where("ep.user_id = ?", userID).
		Order("products.name").
		Find(&out.Products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list excluded products: %w", err)
	}

	err = s.db.WithContext(ctx).Select("tags.*").
		Joins("JOIN user_excluded_tags et ON et.tag_id = tags.id").
		Where("et.user_id = ?", userID).
		Order("tags.name").
		Find(&out.Tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list excluded tags: %w", err)
	}

	if out.Products == nil {
		out.Products = []models.Product{}
	}
	if out.Tags == nil {
		out.Tags = []models.Tag{}
	}
	return out, nil
}

// ExclusionSet returns the ID sets as they are stored right now.
func (s *ExclusionService) ExclusionSet(ctx context.Context, userID uuid.UUID) (nutrition.ExclusionSet, error) {
	var productIDs, tagIDs []uuid.UUID

	err := s.db.WithContext(ctx).Model(&models.ExcludedProduct{}).
		Where("user_id = ?", userID).
		Pluck("product_id", &productIDs).Error
	if err != nil {
		return nutrition.ExclusionSet{}, fmt.Errorf("failed to load excluded product ids: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.ExcludedTag{}).
		Where("user_id = ?", userID).
		Pluck("tag_id", &tagIDs).Error
	if err != nil {
		return nutrition.ExclusionSet{}, fmt.Errorf("failed to load excluded tag ids: %w", err)
	}

	return nutrition.NewExclusionSet(productIDs, tagIDs), nil
}

func (s *ExclusionService) exists(ctx context.Context, model interface{}, column string, userID, targetID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model).
		Where("user_id = ? AND "+column+" = ?", userID, targetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check exclusion: %w", err)
	}
	return count > 0, nil
}
