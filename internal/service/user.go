package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/nutrition"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxStartWeight = 400

// UserService handles course participant profiles
type UserService struct {
	db *gorm.DB
}

var _ IUserService = (*UserService)(nil)

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetUserResponse(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureTelegramUser returns the user with telegramID, creating it on first sight.
// Username and first name are refreshed when they change.
func (s *UserService) EnsureTelegramUser(ctx context.Context, telegramID int64, username, firstName string) (*models.User, error) {
	if telegramID <= 0 {
		return nil, NewValidationError("telegram_id", "must be positive")
	}

	user := models.User{TelegramID: telegramID, Username: username, FirstName: firstName}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	var stored models.User
	if err := s.db.WithContext(ctx).First(&stored, "telegram_id = ?", telegramID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &stored, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserResponse, error) {
	var verrs []FieldError
	if req.StartWeight != nil {
		w := *req.StartWeight
		if math.IsNaN(w) || w <= 0 || w > maxStartWeight {
			verrs = append(verrs, FieldError{Field: "startWeight", Message: fmt.Sprintf("must be between 0 and %d kg", maxStartWeight)})
		}
	}
	if req.Goal != nil && !req.Goal.IsValid() {
		verrs = append(verrs, FieldError{Field: "goal", Message: "must be weight_loss or muscle_gain"})
	}
	if len(verrs) > 0 {
		return nil, &ValidationError{Errors: verrs}
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.StartWeight != nil {
		updates["start_weight"] = *req.StartWeight
	}
	if req.Goal != nil {
		updates["goal"] = *req.Goal
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetUserResponse(ctx, userID)
}

// NutritionTarget computes the daily target from the stored profile. A nil
// target with a nil error means the profile is incomplete.
func (s *UserService) NutritionTarget(ctx context.Context, userID uuid.UUID) (*nutrition.NutritionTarget, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nutrition.CalculateFromProfile(user.StartWeight, user.Goal), nil
}

func toUserResponse(user *models.User) *types.UserResponse {
	return &types.UserResponse{
		User:            *user,
		NutritionTarget: nutrition.CalculateFromProfile(user.StartWeight, user.Goal),
	}
}

// requireRow reports ErrNotFound when no row of model matches id.
func requireRow(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID, what string) error {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up %s: %w", what, err)
	}
	if count == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
