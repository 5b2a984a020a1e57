package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackly-server/models"
)

// fakeServer is a minimal in-memory stand-in for the entries API.
type fakeServer struct {
	mu       sync.Mutex
	entries  []models.Entry
	nextID   int64
	failNext bool // when set, the next mutating call is rejected
}

func newFakeServer() *fakeServer {
	return &fakeServer{nextID: 1}
}

func (f *fakeServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		write := func(payload map[string]interface{}) {
			payload["status_code"] = 0
			json.NewEncoder(w).Encode(payload)
		}
		reject := func(msg string) {
			json.NewEncoder(w).Encode(map[string]interface{}{"status_code": 1, "status_msg": msg})
		}

		if r.Method != http.MethodGet && f.failNext {
			f.failNext = false
			reject("rejected")
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/entries":
			// Newest first, no paging needed for these tests.
			out := make([]models.Entry, len(f.entries))
			copy(out, f.entries)
			for i := 0; i < len(out)/2; i++ {
				out[i], out[len(out)-1-i] = out[len(out)-1-i], out[i]
			}
			write(map[string]interface{}{"entries": out, "next_cursor": ""})

		case r.Method == http.MethodPost && r.URL.Path == "/entries":
			var in EntryInput
			json.NewDecoder(r.Body).Decode(&in)
			e := models.Entry{
				ID:        f.nextID,
				EntityID:  in.EntityID,
				Timestamp: in.Timestamp,
				Notes:     in.Notes,
			}
			if e.Timestamp.IsZero() {
				e.Timestamp = time.Now()
			}
			f.nextID++
			f.entries = append(f.entries, e)
			write(map[string]interface{}{"entry": e})

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/entries/"):
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/entries/"), 10, 64)
			kept := f.entries[:0]
			for _, e := range f.entries {
				if e.ID != id {
					kept = append(kept, e)
				}
			}
			f.entries = kept
			write(map[string]interface{}{})

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/archive"):
			idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/entries/"), "/archive")
			id, _ := strconv.ParseInt(idStr, 10, 64)
			for i := range f.entries {
				if f.entries[i].ID == id {
					f.entries[i].Archived = !f.entries[i].Archived
					write(map[string]interface{}{"entry": f.entries[i]})
					return
				}
			}
			reject("entry not found")

		default:
			reject("unexpected call: " + r.Method + " " + r.URL.Path)
		}
	})
}

func newTestStore(t *testing.T) (*Store, *fakeServer) {
	t.Helper()
	fake := newFakeServer()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return NewStore(New(srv.URL)), fake
}

func entryIDs(entries []models.Entry) []int64 {
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestStoreCreateEntryOptimistic(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Refresh(ctx, TimelineQuery{}))

	created, err := store.CreateEntry(ctx, EntryInput{EntityID: 1, Notes: "morning run"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	// The temp entry was swapped for the server's version.
	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, "morning run", entries[0].Notes)
}

func TestStoreCreateEntryRollback(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Refresh(ctx, TimelineQuery{}))

	_, err := store.CreateEntry(ctx, EntryInput{EntityID: 1, Notes: "kept"})
	require.NoError(t, err)

	fake.failNext = true
	_, err = store.CreateEntry(ctx, EntryInput{EntityID: 1, Notes: "rejected"})
	require.Error(t, err)

	// The optimistic insert was rolled back; the earlier entry survived.
	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Notes)
}

func TestStoreDeleteEntryRollback(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateEntry(ctx, EntryInput{EntityID: 1, Notes: "a"})
	require.NoError(t, err)
	_, err = store.CreateEntry(ctx, EntryInput{EntityID: 1, Notes: "b"})
	require.NoError(t, err)

	fake.failNext = true
	err = store.DeleteEntry(ctx, 1)
	require.Error(t, err)
	assert.Len(t, store.Entries(), 2, "failed delete must restore the entry")

	require.NoError(t, store.DeleteEntry(ctx, 1))
	assert.Equal(t, []int64{2}, entryIDs(store.Entries()))
}

func TestStoreToggleArchiveDropsFromDefaultView(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Refresh(ctx, TimelineQuery{}))

	_, err := store.CreateEntry(ctx, EntryInput{EntityID: 1, Notes: "to archive"})
	require.NoError(t, err)

	require.NoError(t, store.ToggleArchive(ctx, 1))
	assert.Empty(t, store.Entries(), "archived entry leaves the default view")
}

func TestStoreToggleArchiveRollback(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Refresh(ctx, TimelineQuery{}))

	_, err := store.CreateEntry(ctx, EntryInput{EntityID: 1, Notes: "stays"})
	require.NoError(t, err)

	fake.failNext = true
	err = store.ToggleArchive(ctx, 1)
	require.Error(t, err)

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Archived)
}

func TestStoreOrdering(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Refresh(ctx, TimelineQuery{}))

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.CreateEntry(ctx, EntryInput{
			EntityID:  1,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	// Default view is newest first.
	assert.Equal(t, []int64{3, 2, 1}, entryIDs(store.Entries()))
}
