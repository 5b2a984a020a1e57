package service

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"trackly-server/models"
)

// Cursor is the decoded continuation token for the timeline: the sort-field
// value and row ID of the last entry on the previous page. (timestamp, id) is
// a total order, so resuming strictly past it yields no duplicates and no gaps.
type Cursor struct {
	Timestamp time.Time `json:"t"`
	ID        int64     `json:"id"`
}

// EncodeCursor renders a cursor as an opaque URL-safe token.
func EncodeCursor(c Cursor) string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	var c Cursor
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}

// ApplyCursor narrows a timeline query to rows strictly after the cursor in
// the given direction.
func ApplyCursor(q *gorm.DB, c Cursor, asc bool) *gorm.DB {
	if asc {
		return q.Where("timestamp > ? OR (timestamp = ? AND id > ?)", c.Timestamp, c.Timestamp, c.ID)
	}
	return q.Where("timestamp < ? OR (timestamp = ? AND id < ?)", c.Timestamp, c.Timestamp, c.ID)
}

// NextToken builds the continuation token pointing at the last entry of a
// full page, or "" when the page was short (no more rows).
func NextToken(page []models.Entry, limit int) string {
	if len(page) < limit {
		return ""
	}
	last := page[len(page)-1]
	return EncodeCursor(Cursor{Timestamp: last.Timestamp, ID: last.ID})
}
