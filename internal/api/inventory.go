package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

type InventoryHandler struct {
	inventory service.IInventoryService
}

func NewInventoryHandler(inventory service.IInventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type addInventoryRequest struct {
	ProductID     uuid.UUID       `json:"productId"`
	QuantityGrams QuantityInput   `json:"quantityGrams"`
	QuantityUnits QuantityInput   `json:"quantityUnits"`
	Location      models.Location `json:"location"`
	ExpiryDate    string          `json:"expiryDate"`
}

type updateInventoryRequest struct {
	QuantityGrams QuantityInput `json:"quantityGrams"`
}

func (h *InventoryHandler) ListInventory(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	inventory, err := h.inventory.ListInventory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, types.InventoryResponse{Inventory: inventory})
}

func (h *InventoryHandler) AddItem(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	var req addInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	if req.ProductID == uuid.Nil {
		respondError(c, service.NewValidationError("productId", "is required"))
		return
	}
	expiry, err := parseExpiryDate(req.ExpiryDate)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.inventory.AddItem(c.Request.Context(), userID, types.AddInventoryItem{
		ProductID:     req.ProductID,
		QuantityGrams: req.QuantityGrams.Ptr(),
		QuantityUnits: req.QuantityUnits.Ptr(),
		Location:      req.Location,
		ExpiryDate:    expiry,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, item)
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	if !req.QuantityGrams.Set {
		respondError(c, service.NewValidationError("quantityGrams", "is required"))
		return
	}

	item, err := h.inventory.UpdateItemQuantity(c.Request.Context(), userID, itemID, req.QuantityGrams.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.inventory.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

// parseExpiryDate accepts a calendar date or an RFC 3339 timestamp.
func parseExpiryDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, service.NewValidationError("expiryDate", "must be a date in YYYY-MM-DD format")
}
