package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour

	maxIdempotencyKeyLength = 255
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Now  func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key already used by the same tenant. Keys are optional. A key
// is reserved while its request runs, so a concurrent duplicate gets 409.
// Only successful responses are kept; a failed attempt releases the key and
// can be retried. Reusing a key with a different body is rejected.
// It must run after AuthMiddleware.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		if len(idempotencyKey) > maxIdempotencyKeyLength {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		tenantID := GetTenantID(c)
		userID := GetUserID(c)
		if tenantID == uuid.Nil || userID == uuid.Nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		requestHash := hashRequest(body)
		endpoint := c.Request.Method + " " + c.FullPath()

		ctx := c.Request.Context()
		existing, err := config.Repo.GetByKey(ctx, idempotencyKey)
		if err != nil {
			log.Printf("idempotency lookup failed: %v", err)
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired(now()) {
			answerExisting(c, existing, endpoint, requestHash)
			return
		}
		if existing != nil {
			// an expired key is replaced by this request
			if _, err := config.Repo.DeleteExpired(ctx, now()); err != nil {
				log.Printf("idempotency cleanup failed: %v", err)
			}
		}

		// Reserve the key before running the handler. The unique index on
		// (tenant_id, idempotency_key) lets only one request hold it.
		ikey := &entity.IdempotencyKey{
			TenantID:    tenantID,
			Key:         idempotencyKey,
			UserID:      userID,
			Endpoint:    endpoint,
			RequestHash: requestHash,
			ExpiresAt:   now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(ctx, ikey); err != nil {
			if !errors.Is(err, repository.ErrDuplicate) {
				log.Printf("idempotency reserve failed for key %q: %v", idempotencyKey, err)
				c.Next()
				return
			}
			holder, err := config.Repo.GetByKey(ctx, idempotencyKey)
			if err != nil || holder == nil {
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is in progress")
				c.Abort()
				return
			}
			answerExisting(c, holder, endpoint, requestHash)
			return
		}

		// the outcome is recorded even if the client has gone away
		storeCtx := context.WithoutCancel(ctx)
		stored := false
		defer func() {
			if stored {
				return
			}
			if err := config.Repo.Delete(storeCtx, ikey.ID); err != nil {
				log.Printf("idempotency release failed for key %q: %v", idempotencyKey, err)
			}
		}()

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		if err := config.Repo.Complete(storeCtx, ikey.ID, status, blw.body.String()); err != nil {
			log.Printf("idempotency store failed for key %q: %v", idempotencyKey, err)
			return
		}
		stored = true
	}
}

// answerExisting responds from a key another request already holds
func answerExisting(c *gin.Context, existing *entity.IdempotencyKey, endpoint, requestHash string) {
	defer c.Abort()
	if existing.Endpoint != endpoint || existing.RequestHash != requestHash {
		response.BadRequest(c, "Idempotency-Key was already used for a different request")
		return
	}
	if existing.IsPending() {
		response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is in progress")
		return
	}
	c.Header(IdempotencyReplayedHeader, "true")
	c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
}

func hashRequest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
