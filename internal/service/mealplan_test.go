package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/mocks"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/nutrition"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/testhelpers"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type planFixture struct {
	db         *gorm.DB
	exclusions *service.ExclusionService
	inventory  *service.InventoryService
	generator  *mocks.MockGenerator
	snapshots  *mocks.MockSnapshotStore
	reporter   *mocks.MockReporter
	svc        *service.MealPlanService
}

func setupPlans(t *testing.T) *planFixture {
	db := testhelpers.NewSQLiteDB(t)
	f := &planFixture{
		db:         db,
		exclusions: service.NewExclusionService(db),
		inventory:  service.NewInventoryService(db),
		generator:  new(mocks.MockGenerator),
		snapshots:  new(mocks.MockSnapshotStore),
		reporter:   new(mocks.MockReporter),
	}
	f.svc = service.NewMealPlanService(db, service.NewUserService(db), f.exclusions, f.inventory, f.generator, f.snapshots, f.reporter)
	return f
}

func TestBuildRequestValidatesWeeks(t *testing.T) {
	f := setupPlans(t)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)
	ctx := context.Background()

	for _, weeks := range []int{-1, 5} {
		_, err := f.svc.BuildRequest(ctx, user.ID, types.GenerateOptions{Weeks: weeks})
		assert.ErrorIs(t, err, service.ErrValidation, "weeks=%d", weeks)
	}

	req, err := f.svc.BuildRequest(ctx, user.ID, types.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, req.Weeks)
}

func TestBuildRequestRequiresCompleteProfile(t *testing.T) {
	f := setupPlans(t)
	user := testhelpers.CreateUser(t, f.db, 0, models.GoalWeightLoss)

	_, err := f.svc.BuildRequest(context.Background(), user.ID, types.GenerateOptions{Weeks: 1})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestBuildRequestUnknownUser(t *testing.T) {
	f := setupPlans(t)
	_, err := f.svc.BuildRequest(context.Background(), uuid.New(), types.GenerateOptions{Weeks: 1})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestBuildRequestWithoutInventory(t *testing.T) {
	f := setupPlans(t)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)
	rice := testhelpers.CreateProduct(t, f.db, "Rice", 130, 2.7, 0.3, 28)
	_, err := f.inventory.AddItem(context.Background(), user.ID, types.AddInventoryItem{ProductID: rice.ID})
	require.NoError(t, err)

	req, err := f.svc.BuildRequest(context.Background(), user.ID, types.GenerateOptions{Weeks: 1})
	require.NoError(t, err)
	assert.NotNil(t, req.Inventory)
	assert.Empty(t, req.Inventory)
	assert.Equal(t, nutrition.NutritionTarget{Calories: 2320, ProteinG: 160, FatG: 50, CarbsG: 308}, req.Targets)
}

func TestGeneratePassesCurrentState(t *testing.T) {
	f := setupPlans(t)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, f.db, 75, models.GoalMuscleGain)
	milk := testhelpers.CreateProduct(t, f.db, "Milk", 60, 3, 3.2, 4.7)
	chicken := testhelpers.CreateProduct(t, f.db, "Chicken breast", 165, 31, 3.6, 0)
	lactose := testhelpers.CreateTag(t, f.db, "lactose", models.TagTypeAllergen)

	_, err := f.exclusions.AddProductExclusion(ctx, user.ID, milk.ID)
	require.NoError(t, err)
	_, err = f.exclusions.AddTagExclusion(ctx, user.ID, lactose.ID)
	require.NoError(t, err)
	_, err = f.inventory.AddItem(ctx, user.ID, types.AddInventoryItem{
		ProductID:     chicken.ID,
		QuantityGrams: grams(300),
		Location:      models.LocationFridge,
	})
	require.NoError(t, err)

	matches := mock.MatchedBy(func(req *types.GenerationRequest) bool {
		return req.UserID == user.ID &&
			req.Weeks == 2 &&
			req.UseInventory &&
			req.Targets == nutrition.NutritionTarget{Calories: 3200, ProteinG: 150, FatG: 75, CarbsG: 481} &&
			len(req.ExcludedProductIDs) == 1 && req.ExcludedProductIDs[0] == milk.ID &&
			len(req.ExcludedTagIDs) == 1 && req.ExcludedTagIDs[0] == lactose.ID &&
			len(req.Inventory) == 1 && req.Inventory[0].ProductID == chicken.ID &&
			*req.Inventory[0].QuantityGrams == 300
	})
	planID := uuid.New()
	f.snapshots.On("Save", mock.Anything, matches).Return(nil).Once()
	f.generator.On("Generate", mock.Anything, matches).
		Return(&types.PlanSummary{PlanID: planID, Weeks: 2, Days: 14}, nil).Once()

	summary, err := f.svc.Generate(ctx, user.ID, types.GenerateOptions{Weeks: 2, UseInventory: true})
	require.NoError(t, err)
	assert.Equal(t, planID, summary.PlanID)

	f.generator.AssertExpectations(t)
	f.snapshots.AssertExpectations(t)
	f.reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateContinuesWhenSnapshotFails(t *testing.T) {
	f := setupPlans(t)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)

	f.snapshots.On("Save", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	f.generator.On("Generate", mock.Anything, mock.Anything).
		Return(&types.PlanSummary{PlanID: uuid.New(), Weeks: 1, Days: 7}, nil).Once()

	_, err := f.svc.Generate(context.Background(), user.ID, types.GenerateOptions{Weeks: 1})
	require.NoError(t, err)
	f.generator.AssertExpectations(t)
}

func TestGenerateReportsGeneratorFailure(t *testing.T) {
	f := setupPlans(t)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)

	f.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.generator.On("Generate", mock.Anything, mock.Anything).
		Return(nil, &service.GeneratorError{Message: "not enough recipes"}).Once()
	f.reporter.On("Report", mock.Anything, "mealplan.generate_failed", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["user_id"] == user.ID.String() && fields["weeks"] == 1
	})).Once()

	_, err := f.svc.Generate(context.Background(), user.ID, types.GenerateOptions{Weeks: 1})
	require.Error(t, err)

	var genErr *service.GeneratorError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "not enough recipes", genErr.Message)
	f.reporter.AssertExpectations(t)
}

func TestGenerateWithoutGenerator(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewMealPlanService(db, service.NewUserService(db), service.NewExclusionService(db), service.NewInventoryService(db), nil, nil, nil)
	user := testhelpers.CreateUser(t, db, 80, models.GoalWeightLoss)

	_, err := svc.Generate(context.Background(), user.ID, types.GenerateOptions{Weeks: 1})
	assert.ErrorIs(t, err, service.ErrGeneratorUnavailable)

	_, err = svc.LatestInputs(context.Background(), user.ID)
	assert.ErrorIs(t, err, service.ErrStorageUnavailable)
}

func TestGenerateDoesNotCallGeneratorOnInvalidInput(t *testing.T) {
	f := setupPlans(t)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)

	_, err := f.svc.Generate(context.Background(), user.ID, types.GenerateOptions{Weeks: 9})
	assert.ErrorIs(t, err, service.ErrValidation)
	f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	f.snapshots.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLatestPlanOrdersDaysAndMeals(t *testing.T) {
	f := setupPlans(t)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)
	rice := testhelpers.CreateProduct(t, f.db, "Rice", 130, 2.7, 0.3, 28)
	recipe := testhelpers.CreateRecipe(t, f.db, "Plain rice", []*models.Product{rice}, nil)

	testhelpers.CreateMealPlan(t, f.db, user, []models.MealDay{
		{WeekNumber: 1, DayNumber: 1},
	})
	latest := testhelpers.CreateMealPlan(t, f.db, user, []models.MealDay{
		{WeekNumber: 1, DayNumber: 2},
		{
			WeekNumber: 1,
			DayNumber:  1,
			Meals: []models.Meal{
				{MealType: models.MealTypeDinner, Position: 2},
				{MealType: models.MealTypeBreakfast, Position: 0, RecipeID: &recipe.ID},
			},
		},
	})
	// Creation timestamps in sqlite can collide, push the first plan back.
	require.NoError(t, f.db.Exec("UPDATE meal_plans SET created_at = datetime('now', '-1 day') WHERE id <> ?", latest.ID).Error)

	plan, err := f.svc.LatestPlan(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, plan.ID)
	require.Len(t, plan.Days, 2)
	assert.Equal(t, 1, plan.Days[0].DayNumber)
	assert.Equal(t, 2, plan.Days[1].DayNumber)
	require.Len(t, plan.Days[0].Meals, 2)
	assert.Equal(t, models.MealTypeBreakfast, plan.Days[0].Meals[0].MealType)
	require.NotNil(t, plan.Days[0].Meals[0].Recipe)
	assert.Equal(t, "Plain rice", plan.Days[0].Meals[0].Recipe.Name)
	assert.Nil(t, plan.Days[0].Meals[1].Recipe)
}

func TestLatestPlanNotFound(t *testing.T) {
	f := setupPlans(t)
	user := testhelpers.CreateUser(t, f.db, 80, models.GoalWeightLoss)

	_, err := f.svc.LatestPlan(context.Background(), user.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestLatestInputsDelegatesToStore(t *testing.T) {
	f := setupPlans(t)
	userID := uuid.New()
	stored := &types.GenerationRequest{UserID: userID, Weeks: 3}
	f.snapshots.On("Latest", mock.Anything, userID).Return(stored, nil).Once()

	got, err := f.svc.LatestInputs(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}
