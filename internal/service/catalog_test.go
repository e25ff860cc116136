package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/nutrition"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/testhelpers"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProducts(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewCatalogService(db)
	testhelpers.CreateProduct(t, db, "Chicken breast", 165, 31, 3.6, 0)
	testhelpers.CreateProduct(t, db, "Chickpeas", 364, 19, 6, 61)
	testhelpers.CreateProduct(t, db, "Milk", 60, 3, 3.2, 4.7)
	ctx := context.Background()

	products, err := svc.SearchProducts(ctx, "CHICK", 0)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Chicken breast", products[0].Name)
	assert.Equal(t, "Chickpeas", products[1].Name)

	products, err = svc.SearchProducts(ctx, "chick", 1)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	products, err = svc.SearchProducts(ctx, "cheese", 0)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestSearchProductsTreatsWildcardsLiterally(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewCatalogService(db)
	testhelpers.CreateProduct(t, db, "Milk", 60, 3, 3.2, 4.7)
	testhelpers.CreateProduct(t, db, "Milk 3.2%", 60, 3, 3.2, 4.7)

	products, err := svc.SearchProducts(context.Background(), "%", 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Milk 3.2%", products[0].Name)
}

func TestSearchProductsRequiresQuery(t *testing.T) {
	svc := service.NewCatalogService(testhelpers.NewSQLiteDB(t))
	_, err := svc.SearchProducts(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSearchProductsCapsLimit(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewCatalogService(db)
	for i := 0; i < service.MaxSearchLimit+5; i++ {
		testhelpers.CreateProduct(t, db, fmt.Sprintf("Apple %03d", i), 52, 0.3, 0.2, 14)
	}

	products, err := svc.SearchProducts(context.Background(), "apple", 1000)
	require.NoError(t, err)
	assert.Len(t, products, service.MaxSearchLimit)
}

func TestImportProductIsIdempotent(t *testing.T) {
	svc := service.NewCatalogService(testhelpers.NewSQLiteDB(t))
	ctx := context.Background()
	req := &types.ImportProductRequest{
		Source:     "openfoodfacts",
		ExternalID: "3017620422003",
		Name:       "Hazelnut spread",
		Calories:   539,
		Protein:    6.3,
		Fat:        30.9,
		Carbs:      57.5,
	}

	first, err := svc.ImportProduct(ctx, req)
	require.NoError(t, err)
	second, err := svc.ImportProduct(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "openfoodfacts", second.Source)
	require.NotNil(t, second.ExternalID)
	assert.Equal(t, "3017620422003", *second.ExternalID)
}

func TestImportProductValidation(t *testing.T) {
	svc := service.NewCatalogService(testhelpers.NewSQLiteDB(t))

	_, err := svc.ImportProduct(context.Background(), &types.ImportProductRequest{
		Source:   models.ProductSourceLocal,
		Name:     "",
		Calories: -1,
	})
	require.ErrorIs(t, err, service.ErrValidation)

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"source", "externalId", "name", "nutrition"}, fields)
}

func TestListTagsGroupsByType(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewCatalogService(db)
	testhelpers.CreateTag(t, db, "lactose", models.TagTypeAllergen)
	testhelpers.CreateTag(t, db, "gluten", models.TagTypeAllergen)
	testhelpers.CreateTag(t, db, "vegan", models.TagTypeDiet)

	groups, err := svc.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, groups.Allergen, 2)
	assert.Equal(t, "gluten", groups.Allergen[0].Name)
	require.Len(t, groups.Diet, 1)
	assert.NotNil(t, groups.Preference)
	assert.Empty(t, groups.Preference)
}

func TestCompatibleRecipes(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewCatalogService(db)
	milk := testhelpers.CreateProduct(t, db, "Milk", 60, 3, 3.2, 4.7)
	oats := testhelpers.CreateProduct(t, db, "Oats", 389, 17, 7, 66)
	chicken := testhelpers.CreateProduct(t, db, "Chicken breast", 165, 31, 3.6, 0)
	rice := testhelpers.CreateProduct(t, db, "Rice", 130, 2.7, 0.3, 28)
	spicy := testhelpers.CreateTag(t, db, "spicy", models.TagTypePreference)

	testhelpers.CreateRecipe(t, db, "Porridge", []*models.Product{milk, oats}, nil)
	testhelpers.CreateRecipe(t, db, "Chicken with rice", []*models.Product{chicken, rice}, nil)
	testhelpers.CreateRecipe(t, db, "Spicy rice", []*models.Product{rice}, []*models.Tag{spicy})
	ctx := context.Background()

	all, err := svc.CompatibleRecipes(ctx, nutrition.NewExclusionSet(nil, nil))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	set := nutrition.NewExclusionSet([]uuid.UUID{milk.ID}, []uuid.UUID{spicy.ID})
	recipes, err := svc.CompatibleRecipes(ctx, set)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Chicken with rice", recipes[0].Name)
	assert.Len(t, recipes[0].Ingredients, 2)
}

func testSeed() *types.CatalogSeed {
	return &types.CatalogSeed{
		Products: []types.SeedProduct{
			{Key: "oats", Name: "Oats", Calories: 389, Protein: 17, Fat: 7, Carbs: 66},
			{Key: "milk", Name: "Milk", Calories: 60, Protein: 3, Fat: 3.2, Carbs: 4.7},
		},
		Tags: []types.SeedTag{
			{Name: "lactose", Type: models.TagTypeAllergen},
		},
		Recipes: []types.SeedRecipe{
			{
				Name:         "Porridge",
				Instructions: []string{"Boil milk", "Add oats"},
				CookingTime:  10,
				Ingredients: []types.SeedIngredient{
					{Product: "oats", Grams: 50},
					{Product: "milk", Grams: 200},
				},
				Tags: []string{"lactose"},
			},
		},
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewCatalogService(db)
	ctx := context.Background()

	result, err := svc.Seed(ctx, testSeed())
	require.NoError(t, err)
	assert.Equal(t, &types.SeedResult{Products: 2, Tags: 1, Recipes: 1}, result)

	result, err = svc.Seed(ctx, testSeed())
	require.NoError(t, err)
	assert.Equal(t, &types.SeedResult{}, result)

	var recipe models.Recipe
	require.NoError(t, db.Preload("Ingredients").Preload("Tags").First(&recipe, "name = ?", "Porridge").Error)
	assert.InDelta(t, 314.5, recipe.Calories, 0.001)
	assert.InDelta(t, 14.5, recipe.Protein, 0.001)
	assert.Len(t, recipe.Ingredients, 2)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "lactose", recipe.Tags[0].Name)
	assert.Equal(t, models.JSONBStringArray{"Boil milk", "Add oats"}, recipe.Instructions)
}

func TestSeedRejectsUnknownReferences(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewCatalogService(db)
	seed := testSeed()
	seed.Recipes[0].Ingredients = append(seed.Recipes[0].Ingredients, types.SeedIngredient{Product: "honey", Grams: 10})

	_, err := svc.Seed(context.Background(), seed)
	assert.ErrorIs(t, err, service.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedShippedCatalog(t *testing.T) {
	raw, err := os.ReadFile("../../seeds/catalog.json")
	require.NoError(t, err)
	var seed types.CatalogSeed
	require.NoError(t, json.Unmarshal(raw, &seed))

	db := testhelpers.NewSQLiteDB(t)
	result, err := service.NewCatalogService(db).Seed(context.Background(), &seed)
	require.NoError(t, err)
	assert.Equal(t, len(seed.Tags), result.Tags)
	assert.Equal(t, len(seed.Products), result.Products)
	assert.Equal(t, len(seed.Recipes), result.Recipes)
}
