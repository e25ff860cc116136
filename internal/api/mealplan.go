package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/middleware"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

type MealPlanHandler struct {
	plans   service.IMealPlanService
	export  service.IExportService
	limiter *middleware.RateLimiter
}

// NewMealPlanHandler takes the limiter guarding generation so its budget can be reported.
func NewMealPlanHandler(plans service.IMealPlanService, export service.IExportService, limiter *middleware.RateLimiter) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, export: export, limiter: limiter}
}

type rateLimitStatus struct {
	Enabled   bool      `json:"enabled"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Window    string    `json:"window"`
	ResetAt   time.Time `json:"resetAt"`
}

// Generate accepts an empty body, which generates a single week.
func (h *MealPlanHandler) Generate(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	var opts types.GenerateOptions
	if err := c.ShouldBindJSON(&opts); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, bindError(err))
		return
	}

	summary, err := h.plans.Generate(c.Request.Context(), userID, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, summary)
}

func (h *MealPlanHandler) LatestPlan(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	plan, err := h.plans.LatestPlan(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, plan)
}

func (h *MealPlanHandler) LatestInputs(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	inputs, err := h.plans.LatestInputs(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, inputs)
}

func (h *MealPlanHandler) Export(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.export.ExportLatestPlan(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// RateLimit reports the remaining generation budget of the current window.
func (h *MealPlanHandler) RateLimit(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.limiter.Enabled() {
		respondOK(c, http.StatusOK, rateLimitStatus{Enabled: false})
		return
	}

	remaining, resetAt, err := h.limiter.GetRemainingRequests(c.Request.Context(), userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rateLimitStatus{
		Enabled:   true,
		Limit:     h.limiter.Limit(),
		Remaining: remaining,
		Window:    h.limiter.Window().String(),
		ResetAt:   resetAt,
	})
}
