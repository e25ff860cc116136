package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

// NutritionHandler serves targets, exclusions and the catalog.
type NutritionHandler struct {
	users      service.IUserService
	exclusions service.IExclusionService
	catalog    service.ICatalogService
}

func NewNutritionHandler(users service.IUserService, exclusions service.IExclusionService, catalog service.ICatalogService) *NutritionHandler {
	return &NutritionHandler{users: users, exclusions: exclusions, catalog: catalog}
}

type productExclusionRequest struct {
	UserID    uuid.UUID `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
}

type tagExclusionRequest struct {
	UserID uuid.UUID `json:"userId"`
	TagID  uuid.UUID `json:"tagId"`
}

// GetTargets returns the daily target, or null data while the profile is incomplete.
func (h *NutritionHandler) GetTargets(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	target, err := h.users.NutritionTarget(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, target)
}

func (h *NutritionHandler) GetExclusions(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	exclusions, err := h.exclusions.ListExclusions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, exclusions)
}

func (h *NutritionHandler) AddProductExclusion(c *gin.Context) {
	var req productExclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	userID, err := actingUser(c, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.ProductID == uuid.Nil {
		respondError(c, service.NewValidationError("productId", "is required"))
		return
	}

	excluded, err := h.exclusions.AddProductExclusion(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, excluded)
}

func (h *NutritionHandler) RemoveProductExclusion(c *gin.Context) {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		respondError(c, err)
		return
	}
	userID, err := actingUser(c, uuid.Nil)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.exclusions.RemoveProductExclusion(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

func (h *NutritionHandler) AddTagExclusion(c *gin.Context) {
	var req tagExclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	userID, err := actingUser(c, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.TagID == uuid.Nil {
		respondError(c, service.NewValidationError("tagId", "is required"))
		return
	}

	excluded, err := h.exclusions.AddTagExclusion(c.Request.Context(), userID, req.TagID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, excluded)
}

// RemoveTagExclusion accepts the tag either as a path parameter or in the body.
func (h *NutritionHandler) RemoveTagExclusion(c *gin.Context) {
	var req tagExclusionRequest
	if raw := c.Param("tagId"); raw != "" {
		id, err := pathUUID(c, "tagId")
		if err != nil {
			respondError(c, err)
			return
		}
		req.TagID = id
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	userID, err := actingUser(c, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.TagID == uuid.Nil {
		respondError(c, service.NewValidationError("tagId", "is required"))
		return
	}

	if err := h.exclusions.RemoveTagExclusion(c.Request.Context(), userID, req.TagID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

func (h *NutritionHandler) SearchProducts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, service.NewValidationError("limit", "must be an integer"))
			return
		}
		limit = n
	}

	products, err := h.catalog.SearchProducts(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, products)
}

func (h *NutritionHandler) ImportProduct(c *gin.Context) {
	var req types.ImportProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	product, err := h.catalog.ImportProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, product)
}

func (h *NutritionHandler) ListTags(c *gin.Context) {
	groups, err := h.catalog.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, groups)
}

// CompatibleRecipes lists recipes that avoid every excluded product and tag of the user.
func (h *NutritionHandler) CompatibleRecipes(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	set, err := h.exclusions.ExclusionSet(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	recipes, err := h.catalog.CompatibleRecipes(c.Request.Context(), set)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, recipes)
}
