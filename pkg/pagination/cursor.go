package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Cursor is the keyset anchor for list endpoints. It carries the sort key of
// the last row of the previous page, so the next page stays computable even
// when that row has since been deleted.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// Encode produces the opaque token handed to clients.
func Encode(createdAt time.Time, id string) string {
	raw := fmt.Sprintf("%s|%s", createdAt.UTC().Format(time.RFC3339Nano), id)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a client-supplied token. An empty token means "first page";
// anything undecodable comes back as ErrInvalidCursor so handlers answer 400.
func Decode(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, apperrors.ErrInvalidCursor
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, apperrors.ErrInvalidCursor
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, apperrors.ErrInvalidCursor
	}

	return &Cursor{CreatedAt: createdAt, ID: parts[1]}, nil
}

// Scope applies the keyset condition for descending created_at order with an
// id tiebreak. A nil cursor leaves the query untouched.
func Scope(cursor *Cursor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cursor == nil {
			return db
		}
		return db.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
}

// OrderNewestFirst is the consistent ordering every paginated list uses.
func OrderNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// ClampLimit normalizes a requested page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
