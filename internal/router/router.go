package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/api"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/middleware"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/telemetry"
)

// Handlers groups everything the routes dispatch to.
type Handlers struct {
	Health    *api.HealthHandler
	Users     *api.UserHandler
	Nutrition *api.NutritionHandler
	Inventory *api.InventoryHandler
	MealPlans *api.MealPlanHandler
}

// Options carries the cross-cutting pieces of the engine.
type Options struct {
	Logger          *slog.Logger
	Reporter        telemetry.Reporter
	AllowedOrigins  []string
	GenerateLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, tokens middleware.TokenValidator, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.ReportServerErrors(opts.Reporter),
		middleware.Recovery(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)

	router.GET("/health", h.Health.Health)

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.AuthMiddleware(tokens))

	self := middleware.RequireSelf("userId")

	users := apiGroup.Group("/users/:userId", self)
	{
		users.GET("", h.Users.GetUser)
		users.PUT("", h.Users.UpdateUser)
	}

	nutrition := apiGroup.Group("/nutrition")
	{
		nutrition.GET("/targets/:userId", self, h.Nutrition.GetTargets)
		nutrition.GET("/exclusions/:userId", self, h.Nutrition.GetExclusions)
		nutrition.POST("/exclusions/product", h.Nutrition.AddProductExclusion)
		nutrition.DELETE("/exclusions/product/:productId", h.Nutrition.RemoveProductExclusion)
		nutrition.POST("/exclusions/tag", h.Nutrition.AddTagExclusion)
		nutrition.DELETE("/exclusions/tag", h.Nutrition.RemoveTagExclusion)
		nutrition.DELETE("/exclusions/tag/:tagId", h.Nutrition.RemoveTagExclusion)
		nutrition.GET("/products", h.Nutrition.SearchProducts)
		nutrition.POST("/products/import", h.Nutrition.ImportProduct)
		nutrition.GET("/tags", h.Nutrition.ListTags)
		nutrition.GET("/recipes/:userId", self, h.Nutrition.CompatibleRecipes)
	}

	inventory := apiGroup.Group("/inventory/:userId", self)
	{
		inventory.GET("", h.Inventory.ListInventory)
		inventory.POST("", h.Inventory.AddItem)
		inventory.PUT("/:itemId", h.Inventory.UpdateItem)
		inventory.DELETE("/:itemId", h.Inventory.DeleteItem)
	}

	mealplan := apiGroup.Group("/mealplan/:userId", self)
	{
		mealplan.GET("", h.MealPlans.LatestPlan)
		mealplan.POST("/generate", opts.GenerateLimiter.RateLimitMiddleware(), h.MealPlans.Generate)
		mealplan.GET("/generate/limit", h.MealPlans.RateLimit)
		mealplan.GET("/inputs", h.MealPlans.LatestInputs)
		mealplan.POST("/export", h.MealPlans.Export)
	}

	return router
}
