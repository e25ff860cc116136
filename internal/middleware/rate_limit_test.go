package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/testhelpers"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(limiter *RateLimiter, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	validator := stubValidator{claims: &types.TokenClaims{UserID: userID}}
	r.POST("/generate", AuthMiddleware(validator), limiter.RateLimitMiddleware(), func(c *gin.Context) {
		if c.Query("weeks") == "9" {
			AbortWithError(c, http.StatusBadRequest, "weeks must be between 1 and 4")
			return
		}
		c.Status(http.StatusAccepted)
	})
	return r
}

func doGenerate(r *gin.Engine) *httptest.ResponseRecorder {
	return doGeneratePath(r, "/generate")
}

func doGeneratePath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterWithoutRedisAllowsEverything(t *testing.T) {
	limiter := NewGenerateRateLimiter(nil, 1, time.Hour)
	assert.False(t, limiter.Enabled())

	r := limitedRouter(limiter, uuid.New())
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusAccepted, doGenerate(r).Code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	r := limitedRouter(NewGenerateRateLimiter(client, 1, time.Hour), uuid.New())
	for i := 0; i < 2; i++ {
		w := doGenerate(r)
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	}
}

func TestRateLimiterFixedWindow(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	limiter := NewGenerateRateLimiter(client, 2, time.Hour)
	now := time.Date(2026, 10, 14, 10, 15, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	userID := uuid.New()
	r := limitedRouter(limiter, userID)

	w := doGenerate(r)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusAccepted, doGenerate(r).Code)

	w = doGenerate(r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2700", w.Header().Get("Retry-After"))
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "rate limit exceeded")

	remaining, reset, err := limiter.GetRemainingRequests(context.Background(), userID.String())
	require.NoError(t, err)
	assert.Zero(t, remaining)
	assert.Equal(t, now.Truncate(time.Hour).Add(time.Hour), reset)

	// Another user has an independent budget.
	assert.Equal(t, http.StatusAccepted, doGenerate(limitedRouter(limiter, uuid.New())).Code)

	now = now.Add(time.Hour)
	assert.Equal(t, http.StatusAccepted, doGenerate(r).Code)
}

func TestRateLimiterRefundsRejectedRequests(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	limiter := NewGenerateRateLimiter(client, 2, time.Hour)
	userID := uuid.New()
	r := limitedRouter(limiter, userID)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusBadRequest, doGeneratePath(r, "/generate?weeks=9").Code)
	}

	remaining, _, err := limiter.GetRemainingRequests(context.Background(), userID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	assert.Equal(t, http.StatusAccepted, doGenerate(r).Code)
	assert.Equal(t, http.StatusAccepted, doGenerate(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, doGenerate(r).Code)
}
