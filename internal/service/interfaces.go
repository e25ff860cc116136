package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/nutrition"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

// IAuthService defines the interface for token operations
type IAuthService interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IUserService defines the interface for user profile operations
type IUserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUserResponse(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error)
	EnsureTelegramUser(ctx context.Context, telegramID int64, username, firstName string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserResponse, error)
	NutritionTarget(ctx context.Context, userID uuid.UUID) (*nutrition.NutritionTarget, error)
}

// IExclusionService defines the interface for per-user exclusion sets
type IExclusionService interface {
	AddProductExclusion(ctx context.Context, userID, productID uuid.UUID) (*models.ExcludedProduct, error)
	RemoveProductExclusion(ctx context.Context, userID, productID uuid.UUID) error
	ToggleProductExclusion(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	AddTagExclusion(ctx context.Context, userID, tagID uuid.UUID) (*models.ExcludedTag, error)
	RemoveTagExclusion(ctx context.Context, userID, tagID uuid.UUID) error
	ToggleTagExclusion(ctx context.Context, userID, tagID uuid.UUID) (bool, error)
	ListExclusions(ctx context.Context, userID uuid.UUID) (*types.Exclusions, error)
	ExclusionSet(ctx context.Context, userID uuid.UUID) (nutrition.ExclusionSet, error)
}

// IInventoryService defines the interface for the inventory ledger
type IInventoryService interface {
	AddItem(ctx context.Context, userID uuid.UUID, req types.AddInventoryItem) (*models.InventoryItem, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, grams float64) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
	ListInventory(ctx context.Context, userID uuid.UUID) (*types.InventoryByLocation, error)
	Snapshot(ctx context.Context, userID uuid.UUID) ([]types.InventorySnapshotItem, error)
}

// ICatalogService defines the interface for products, tags and recipes
type ICatalogService interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error)
	ImportProduct(ctx context.Context, req *types.ImportProductRequest) (*models.Product, error)
	ListTags(ctx context.Context) (*types.TagGroups, error)
	CompatibleRecipes(ctx context.Context, set nutrition.ExclusionSet) ([]models.Recipe, error)
	Seed(ctx context.Context, seed *types.CatalogSeed) (*types.SeedResult, error)
}

// IMealPlanService defines the interface for plan generation and retrieval
type IMealPlanService interface {
	Generate(ctx context.Context, userID uuid.UUID, opts types.GenerateOptions) (*types.PlanSummary, error)
	LatestPlan(ctx context.Context, userID uuid.UUID) (*models.MealPlan, error)
	LatestInputs(ctx context.Context, userID uuid.UUID) (*types.GenerationRequest, error)
}

// IExportService defines the interface for plan export
type IExportService interface {
	ExportLatestPlan(ctx context.Context, userID uuid.UUID) (*types.ExportResult, error)
}

// Generator builds and stores a meal plan from a generation request.
type Generator interface {
	Generate(ctx context.Context, req *types.GenerationRequest) (*types.PlanSummary, error)
}

// SnapshotStore keeps the last generation request per user.
type SnapshotStore interface {
	Save(ctx context.Context, req *types.GenerationRequest) error
	Latest(ctx context.Context, userID uuid.UUID) (*types.GenerationRequest, error)
}

// ObjectStore is the subset of object storage used for exports.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
