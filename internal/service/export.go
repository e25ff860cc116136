package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

const exportLinkTTL = 15 * time.Minute

// ExportService publishes the latest plan as a JSON document in object storage.
type ExportService struct {
	plans *MealPlanService
	store ObjectStore
	now   func() time.Time
}

var _ IExportService = (*ExportService)(nil)

// NewExportService takes a nil store when no bucket is configured.
func NewExportService(plans *MealPlanService, store ObjectStore) *ExportService {
	return &ExportService{plans: plans, store: store, now: time.Now}
}

func exportKey(userID, planID uuid.UUID) string {
	return fmt.Sprintf("meal-plans/%s/%s.json", userID, planID)
}

func (s *ExportService) ExportLatestPlan(ctx context.Context, userID uuid.UUID) (*types.ExportResult, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	plan, err := s.plans.LatestPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	key := exportKey(userID, plan.ID)
	if err := s.store.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to upload meal plan: %w", err)
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, exportLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign meal plan url: %w", err)
	}

	return &types.ExportResult{
		URL:       url,
		Key:       key,
		ExpiresAt: s.now().Add(exportLinkTTL).UTC(),
	}, nil
}
