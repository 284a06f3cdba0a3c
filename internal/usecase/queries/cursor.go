package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	MaxListLimit     = 200
	DefaultListLimit = 20
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.New("invalid cursor")

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeCursor(k shared.Keyset) string {
	cursorData := fmt.Sprintf("%s:%d-%s", CursorVersionV1, k.CreatedAt.UnixMicro(), k.ID.String())
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeCursor(cursor string) (shared.Keyset, error) {
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return shared.Keyset{}, errs.Mark(errs.Wrap(err, "cursor is not base64url"), ErrInvalidCursor)
	}

	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return shared.Keyset{}, errs.Mark(errs.New("unsupported cursor version"), ErrInvalidCursor)
	}

	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return shared.Keyset{}, errs.Mark(errs.New("expected '<micros>-<uuid>'"), ErrInvalidCursor)
	}

	timestamp, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return shared.Keyset{}, errs.Mark(errs.Wrap(err, "invalid timestamp"), ErrInvalidCursor)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return shared.Keyset{}, errs.Mark(errs.Wrap(err, "invalid UUID"), ErrInvalidCursor)
	}

	return shared.Keyset{CreatedAt: time.UnixMicro(timestamp).UTC(), ID: id}, nil
}

func ValidateLimit(limit, fallback int) int {
	if fallback <= 0 || fallback > MaxListLimit {
		fallback = DefaultListLimit
	}
	if limit <= 0 {
		return fallback
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
