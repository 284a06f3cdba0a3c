package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotencyReplayedHeader = "Idempotency-Replayed"
	maxIdempotencyKeyLength   = 128
)

var (
	ErrIdempotencyKeyReused = errs.New("idempotency key already used with a different request")
	ErrRequestInProgress    = errs.New("a request with this idempotency key is still being processed")
	ErrIdempotencyKeyFormat = errs.New("idempotency key must be 1-128 characters")
)

type IdempotencyConfig struct {
	TTL           time.Duration
	ProcessingTTL time.Duration
}

type Idempotency struct {
	store shared.IdempotencyStore
	cfg   IdempotencyConfig
}

// NewIdempotency returns nil-safe middleware: with a nil store it only passes
// requests through.
func NewIdempotency(store shared.IdempotencyStore, cfg IdempotencyConfig) *Idempotency {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.ProcessingTTL <= 0 {
		cfg.ProcessingTTL = 60 * time.Second
	}
	return &Idempotency{store: store, cfg: cfg}
}

// Replay makes a request with an Idempotency-Key header safe to retry: a
// successful response is stored and replayed for the same caller, key and
// body. Requests without the header are untouched. Store failures fail open.
// Must run after RequireAuth.
func (m *Idempotency) Replay() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if m.store == nil || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			httperr.BadRequest(c, ErrIdempotencyKeyFormat)
			return
		}

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		p, _ := GetPrincipal(c)
		storeKey := "idempotency:" + p.ID.String() + ":" + key
		hash := requestHash(c, body)
		ctx := c.Request.Context()

		existing, err := m.store.Get(ctx, storeKey)
		if err != nil {
			slog.Warn("idempotency store unavailable", "error", err.Error())
			c.Next()
			return
		}
		if existing == nil {
			reserved, err := m.store.Reserve(ctx, storeKey, shared.IdempotencyRecord{
				Status:      shared.IdempotencyProcessing,
				RequestHash: hash,
			}, m.cfg.ProcessingTTL)
			if err != nil {
				slog.Warn("idempotency store unavailable", "error", err.Error())
				c.Next()
				return
			}
			if !reserved {
				// lost the race to a concurrent duplicate
				existing, err = m.store.Get(ctx, storeKey)
				if err != nil || existing == nil {
					httperr.Abort(c, errs.Mark(ErrRequestInProgress, errs.ErrConflict))
					return
				}
			}
		}
		if existing != nil {
			m.answerExisting(c, existing, hash)
			return
		}

		rw := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rw
		c.Next()

		status := rw.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			// failures are not cached so a corrected retry can go through
			if err := m.store.Release(context.WithoutCancel(ctx), storeKey); err != nil {
				slog.Warn("failed to release idempotency key", "error", err.Error())
			}
			return
		}

		rec := shared.IdempotencyRecord{
			Status:       shared.IdempotencyCompleted,
			RequestHash:  hash,
			ResponseCode: status,
			ResponseBody: rw.body.Bytes(),
		}
		if err := m.store.Save(context.WithoutCancel(ctx), storeKey, rec, m.cfg.TTL); err != nil {
			slog.Warn("failed to save idempotency record", "error", err.Error())
		}
	}
}

func (m *Idempotency) answerExisting(c *gin.Context, rec *shared.IdempotencyRecord, hash string) {
	switch {
	case rec.RequestHash != hash:
		httperr.Abort(c, errs.Mark(ErrIdempotencyKeyReused, errs.ErrConflict))
	case rec.Status == shared.IdempotencyProcessing:
		httperr.Abort(c, errs.Mark(ErrRequestInProgress, errs.ErrConflict))
	default:
		c.Header(IdempotencyReplayedHeader, "true")
		c.Data(rec.ResponseCode, "application/json; charset=utf-8", rec.ResponseBody)
		c.Abort()
	}
}

func requestHash(c *gin.Context, body []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.Path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
