package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

// AbortWithError stops the chain and writes an error envelope.
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, types.Response{Success: false, Error: message})
}
