package service

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackly-server/models"
)

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	in := Cursor{Timestamp: ts, ID: 42}

	token := EncodeCursor(in)
	require.NotEmpty(t, token)

	out, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, in.Timestamp.Equal(out.Timestamp))
	assert.Equal(t, in.ID, out.ID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64 at all!!!")
	assert.Error(t, err)

	_, err = DecodeCursor("aGVsbG8") // valid base64, not a cursor
	assert.Error(t, err)
}

func TestNextToken(t *testing.T) {
	ts := time.Now()
	page := []models.Entry{
		{ID: 3, Timestamp: ts},
		{ID: 2, Timestamp: ts},
	}

	// Full page points at its last row.
	token := NextToken(page, 2)
	require.NotEmpty(t, token)
	cur, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cur.ID)

	// Short page means the timeline is exhausted.
	assert.Empty(t, NextToken(page, 3))
	assert.Empty(t, NextToken(nil, 20))
}

// afterCursor mirrors the SQL predicate ApplyCursor emits.
func afterCursor(e models.Entry, c Cursor, asc bool) bool {
	if asc {
		return e.Timestamp.After(c.Timestamp) || (e.Timestamp.Equal(c.Timestamp) && e.ID > c.ID)
	}
	return e.Timestamp.Before(c.Timestamp) || (e.Timestamp.Equal(c.Timestamp) && e.ID < c.ID)
}

// queryPage serves one page the way the timeline endpoint does: filter by
// cursor, sort, cut at limit.
func queryPage(all []models.Entry, token string, limit int, asc bool) ([]models.Entry, string) {
	rows := make([]models.Entry, 0, len(all))
	if token == "" {
		rows = append(rows, all...)
	} else {
		cur, _ := DecodeCursor(token)
		for _, e := range all {
			if afterCursor(e, cur, asc) {
				rows = append(rows, e)
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			if asc {
				return a.Timestamp.Before(b.Timestamp)
			}
			return a.Timestamp.After(b.Timestamp)
		}
		if asc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, NextToken(rows, limit)
}

// Walking the whole timeline through cursors must visit every entry exactly
// once, in both directions, even with duplicate timestamps.
func TestCursorPageWalk(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var all []models.Entry
	for i := 1; i <= 47; i++ {
		// Every third entry shares a timestamp with its neighbor.
		ts := base.Add(time.Duration(i/3) * time.Hour)
		all = append(all, models.Entry{ID: int64(i), Timestamp: ts})
	}

	for _, asc := range []bool{false, true} {
		seen := make(map[int64]int)
		token := ""
		pages := 0
		for {
			page, next := queryPage(all, token, 10, asc)
			for _, e := range page {
				seen[e.ID]++
			}
			pages++
			require.Less(t, pages, 20, "cursor walk did not terminate")
			if next == "" {
				break
			}
			token = next
		}

		assert.Len(t, seen, len(all), "asc=%v: missing entries", asc)
		for id, n := range seen {
			assert.Equal(t, 1, n, "asc=%v: entry %d seen %d times", asc, id, n)
		}
	}
}
