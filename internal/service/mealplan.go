package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/telemetry"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"gorm.io/gorm"
)

const (
	MinPlanWeeks = 1
	MaxPlanWeeks = 4
)

// MealPlanService assembles generation inputs and reads stored plans.
// The plan itself is produced by the Generator.
type MealPlanService struct {
	db         *gorm.DB
	users      *UserService
	exclusions *ExclusionService
	inventory  *InventoryService
	generator  Generator
	snapshots  SnapshotStore
	reporter   telemetry.Reporter
	now        func() time.Time
}

var _ IMealPlanService = (*MealPlanService)(nil)

// NewMealPlanService wires the plan service. generator and snapshots may be nil
// when those backends are not configured.
func NewMealPlanService(
	db *gorm.DB,
	users *UserService,
	exclusions *ExclusionService,
	inventory *InventoryService,
	generator Generator,
	snapshots SnapshotStore,
	reporter telemetry.Reporter,
) *MealPlanService {
	if reporter == nil {
		reporter = telemetry.Nop{}
	}
	return &MealPlanService{
		db:         db,
		users:      users,
		exclusions: exclusions,
		inventory:  inventory,
		generator:  generator,
		snapshots:  snapshots,
		reporter:   reporter,
		now:        time.Now,
	}
}

// BuildRequest captures the user's targets, exclusion sets and, when asked,
// inventory exactly as stored at call time.
func (s *MealPlanService) BuildRequest(ctx context.Context, userID uuid.UUID, opts types.GenerateOptions) (*types.GenerationRequest, error) {
	weeks := opts.Weeks
	if weeks == 0 {
		weeks = MinPlanWeeks
	}
	if weeks < MinPlanWeeks || weeks > MaxPlanWeeks {
		return nil, NewValidationError("weeks", fmt.Sprintf("must be between %d and %d", MinPlanWeeks, MaxPlanWeeks))
	}

	target, err := s.users.NutritionTarget(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, NewValidationError("profile", "start weight and goal are required to compute nutrition targets")
	}

	set, err := s.exclusions.ExclusionSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	inventory := []types.InventorySnapshotItem{}
	if opts.UseInventory {
		inventory, err = s.inventory.Snapshot(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	return &types.GenerationRequest{
		UserID:             userID,
		Targets:            *target,
		Weeks:              weeks,
		AllowRepeatDays:    opts.AllowRepeatDays,
		PreferSimple:       opts.PreferSimple,
		UseInventory:       opts.UseInventory,
		ExcludedProductIDs: set.ProductIDs(),
		ExcludedTagIDs:     set.TagIDs(),
		Inventory:          inventory,
		RequestedAt:        s.now().UTC(),
	}, nil
}

func (s *MealPlanService) Generate(ctx context.Context, userID uuid.UUID, opts types.GenerateOptions) (*types.PlanSummary, error) {
	req, err := s.BuildRequest(ctx, userID, opts)
	if err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, req); err != nil {
			slog.WarnContext(ctx, "failed to store generation input",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	summary, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.reporter.Report(ctx, "mealplan.generate_failed", map[string]any{
			"user_id": userID.String(),
			"weeks":   req.Weeks,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("failed to generate meal plan: %w", err)
	}
	return summary, nil
}

// LatestPlan returns the newest plan with days ordered by week and day and meals by position.
func (s *MealPlanService) LatestPlan(ctx context.Context, userID uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number, day_number")
		}).
		Preload("Days.Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Days.Meals.Recipe").
		Preload("Days.Meals.Recipe.Ingredients.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("meal plan for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}
	return &plan, nil
}

func (s *MealPlanService) LatestInputs(ctx context.Context, userID uuid.UUID) (*types.GenerationRequest, error) {
	if s.snapshots == nil {
		return nil, ErrStorageUnavailable
	}
	return s.snapshots.Latest(ctx, userID)
}
