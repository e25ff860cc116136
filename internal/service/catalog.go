package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/nutrition"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100

	// SeedSource is the product source used by catalog seeding.
	SeedSource = "seed"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CatalogService serves products, tags and recipes.
type CatalogService struct {
	db *gorm.DB
}

var _ ICatalogService = (*CatalogService)(nil)

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// SearchProducts does a case-insensitive substring match on product names.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewValidationError("search", "must not be empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	products := []models.Product{}
	err := s.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Order("name").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// ImportProduct materializes an external catalog product so it has a local id.
// Importing the same (source, external id) again returns the existing product.
func (s *CatalogService) ImportProduct(ctx context.Context, req *types.ImportProductRequest) (*models.Product, error) {
	source := strings.TrimSpace(req.Source)
	externalID := strings.TrimSpace(req.ExternalID)
	name := strings.TrimSpace(req.Name)

	var verrs []FieldError
	if source == "" || source == models.ProductSourceLocal {
		verrs = append(verrs, FieldError{Field: "source", Message: "must name an external catalog"})
	}
	if externalID == "" {
		verrs = append(verrs, FieldError{Field: "externalId", Message: "is required"})
	}
	if name == "" {
		verrs = append(verrs, FieldError{Field: "name", Message: "is required"})
	}
	if req.Calories < 0 || req.Protein < 0 || req.Fat < 0 || req.Carbs < 0 {
		verrs = append(verrs, FieldError{Field: "nutrition", Message: "values must not be negative"})
	}
	if len(verrs) > 0 {
		return nil, &ValidationError{Errors: verrs}
	}

	product := models.Product{
		Name:       name,
		Source:     source,
		ExternalID: &externalID,
		Calories:   req.Calories,
		Protein:    req.Protein,
		Fat:        req.Fat,
		Carbs:      req.Carbs,
	}
	return s.upsertProduct(ctx, s.db, &product)
}

func (s *CatalogService) upsertProduct(ctx context.Context, db *gorm.DB, product *models.Product) (*models.Product, error) {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source"}, {Name: "external_id"}},
		DoNothing: true,
	}).Create(product).Error
	if err != nil {
		return nil, fmt.Errorf("failed to import product: %w", err)
	}

	var stored models.Product
	err = db.WithContext(ctx).
		Where("source = ? AND external_id = ?", product.Source, *product.ExternalID).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load imported product: %w", err)
	}
	return &stored, nil
}

// ListTags groups every tag by type.
func (s *CatalogService) ListTags(ctx context.Context) (*types.TagGroups, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	groups := &types.TagGroups{
		Allergen:   []models.Tag{},
		Diet:       []models.Tag{},
		Preference: []models.Tag{},
	}
	for _, tag := range tags {
		switch tag.Type {
		case models.TagTypeAllergen:
			groups.Allergen = append(groups.Allergen, tag)
		case models.TagTypeDiet:
			groups.Diet = append(groups.Diet, tag)
		case models.TagTypePreference:
			groups.Preference = append(groups.Preference, tag)
		}
	}
	return groups, nil
}

// CompatibleRecipes returns the recipes none of whose ingredients or tags are excluded.
func (s *CatalogService) CompatibleRecipes(ctx context.Context, set nutrition.ExclusionSet) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Product").
		Preload("Tags").
		Order("name").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	compatible := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		productIDs := make([]uuid.UUID, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			productIDs = append(productIDs, ing.ProductID)
		}
		tagIDs := make([]uuid.UUID, 0, len(r.Tags))
		for _, tag := range r.Tags {
			tagIDs = append(tagIDs, tag.ID)
		}
		if set.Allows(productIDs, tagIDs) {
			compatible = append(compatible, r)
		}
	}
	return compatible, nil
}

// Seed loads a catalog document. Existing tags, products and recipes are kept
// as they are, so running it twice creates nothing the second time.
func (s *CatalogService) Seed(ctx context.Context, seed *types.CatalogSeed) (*types.SeedResult, error) {
	result := &types.SeedResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := make(map[string]models.Tag, len(seed.Tags))
		for _, st := range seed.Tags {
			if !st.Type.IsValid() {
				return NewValidationError("tags", fmt.Sprintf("tag %q has unknown type %q", st.Name, st.Type))
			}
			var tag models.Tag
			err := tx.Where("name = ?", st.Name).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = models.Tag{Name: st.Name, Type: st.Type}
				if err := tx.Create(&tag).Error; err != nil {
					return fmt.Errorf("failed to create tag %q: %w", st.Name, err)
				}
				result.Tags++
			} else if err != nil {
				return fmt.Errorf("failed to look up tag %q: %w", st.Name, err)
			}
			tags[st.Name] = tag
		}

		products := make(map[string]models.Product, len(seed.Products))
		for _, sp := range seed.Products {
			key := sp.Key
			var product models.Product
			err := tx.Where("source = ? AND external_id = ?", SeedSource, key).First(&product).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				product = models.Product{
					Name:       sp.Name,
					Source:     SeedSource,
					ExternalID: &key,
					Calories:   sp.Calories,
					Protein:    sp.Protein,
					Fat:        sp.Fat,
					Carbs:      sp.Carbs,
				}
				if err := tx.Create(&product).Error; err != nil {
					return fmt.Errorf("failed to create product %q: %w", key, err)
				}
				result.Products++
			} else if err != nil {
				return fmt.Errorf("failed to look up product %q: %w", key, err)
			}
			products[key] = product
		}

		for _, sr := range seed.Recipes {
			var count int64
			if err := tx.Model(&models.Recipe{}).Where("name = ?", sr.Name).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to look up recipe %q: %w", sr.Name, err)
			}
			if count > 0 {
				continue
			}

			recipe, err := buildSeedRecipe(sr, products, tags)
			if err != nil {
				return err
			}
			if err := tx.Create(recipe).Error; err != nil {
				return fmt.Errorf("failed to create recipe %q: %w", sr.Name, err)
			}
			result.Recipes++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// buildSeedRecipe resolves references and derives recipe totals from its ingredients.
func buildSeedRecipe(sr types.SeedRecipe, products map[string]models.Product, tags map[string]models.Tag) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Name:         sr.Name,
		Instructions: models.JSONBStringArray(sr.Instructions),
		CookingTime:  sr.CookingTime,
	}
	for _, si := range sr.Ingredients {
		product, ok := products[si.Product]
		if !ok {
			return nil, NewValidationError("recipes", fmt.Sprintf("recipe %q references unknown product %q", sr.Name, si.Product))
		}
		factor := si.Grams / 100
		recipe.Calories += product.Calories * factor
		recipe.Protein += product.Protein * factor
		recipe.Fat += product.Fat * factor
		recipe.Carbs += product.Carbs * factor
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			ProductID: product.ID,
			Grams:     si.Grams,
		})
	}
	for _, name := range sr.Tags {
		tag, ok := tags[name]
		if !ok {
			return nil, NewValidationError("recipes", fmt.Sprintf("recipe %q references unknown tag %q", sr.Name, name))
		}
		recipe.Tags = append(recipe.Tags, tag)
	}
	return recipe, nil
}
