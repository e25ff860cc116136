package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/mocks"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportLatestPlan(t *testing.T) {
	f := setupPlans(t)
	store := new(mocks.MockObjectStore)
	svc := service.NewExportService(f.svc, store)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)
	plan := testhelpers.CreateMealPlan(t, f.db, user, []models.MealDay{{WeekNumber: 1, DayNumber: 1}})
	key := fmt.Sprintf("meal-plans/%s/%s.json", user.ID, plan.ID)

	store.On("PutObject", mock.Anything, key, mock.MatchedBy(func(body []byte) bool {
		var doc models.MealPlan
		return json.Unmarshal(body, &doc) == nil && doc.ID == plan.ID && len(doc.Days) == 1
	}), "application/json").Return(nil).Once()
	store.On("GeneratePresignedURL", mock.Anything, key, 15*time.Minute).
		Return("https://bucket.example/"+key+"?sig=abc", nil).Once()

	before := time.Now()
	result, err := svc.ExportLatestPlan(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, key, result.Key)
	assert.Contains(t, result.URL, "sig=abc")
	assert.WithinDuration(t, before.Add(15*time.Minute), result.ExpiresAt, 5*time.Second)
	store.AssertExpectations(t)
}

func TestExportWithoutPlan(t *testing.T) {
	f := setupPlans(t)
	store := new(mocks.MockObjectStore)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)

	_, err := service.NewExportService(f.svc, store).ExportLatestPlan(context.Background(), user.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportUploadFailure(t *testing.T) {
	f := setupPlans(t)
	store := new(mocks.MockObjectStore)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)
	testhelpers.CreateMealPlan(t, f.db, user, nil)

	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access denied")).Once()

	_, err := service.NewExportService(f.svc, store).ExportLatestPlan(context.Background(), user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	store.AssertNotCalled(t, "GeneratePresignedURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportWithoutStore(t *testing.T) {
	f := setupPlans(t)
	_, err := service.NewExportService(f.svc, nil).ExportLatestPlan(context.Background(), testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss).ID)
	assert.ErrorIs(t, err, service.ErrStorageUnavailable)
}
