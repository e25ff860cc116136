package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

type UserHandler struct {
	users service.IUserService
}

func NewUserHandler(users service.IUserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.GetUserResponse(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}
