package testhelpers

import (
	"sync/atomic"
	"testing"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var nextTelegramID atomic.Int64

// CreateUser inserts a participant. Pass a zero weight or empty goal for an incomplete profile.
func CreateUser(t *testing.T, db *gorm.DB, weight float64, goal models.Goal) *models.User {
	t.Helper()
	user := &models.User{
		TelegramID: 1000 + nextTelegramID.Add(1),
		Username:   "participant",
		FirstName:  "Test",
	}
	if weight > 0 {
		user.StartWeight = &weight
	}
	if goal != "" {
		user.Goal = &goal
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateProduct(t *testing.T, db *gorm.DB, name string, calories, protein, fat, carbs float64) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Calories: calories,
		Protein:  protein,
		Fat:      fat,
		Carbs:    carbs,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func CreateTag(t *testing.T, db *gorm.DB, name string, tagType models.TagType) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Type: tagType}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateRecipe inserts a recipe using 100 g of each product.
func CreateRecipe(t *testing.T, db *gorm.DB, name string, products []*models.Product, tags []*models.Tag) *models.Recipe {
	t.Helper()
	r := &models.Recipe{
		Name:         name,
		Instructions: models.JSONBStringArray{"Prepare " + name},
		CookingTime:  15,
	}
	for _, p := range products {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{ProductID: p.ID, Grams: 100})
		r.Calories += p.Calories
		r.Protein += p.Protein
		r.Fat += p.Fat
		r.Carbs += p.Carbs
	}
	for _, tag := range tags {
		r.Tags = append(r.Tags, *tag)
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// CreateMealPlan inserts a plan together with its days and meals.
func CreateMealPlan(t *testing.T, db *gorm.DB, user *models.User, days []models.MealDay) *models.MealPlan {
	t.Helper()
	plan := &models.MealPlan{
		UserID:         user.ID,
		TargetCalories: 2000,
		TargetProtein:  150,
		TargetFat:      60,
		TargetCarbs:    200,
		Weeks:          1,
		Days:           days,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}
