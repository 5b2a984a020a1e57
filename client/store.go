package client

import (
	"context"
	"sort"
	"sync"
	"time"

	"trackly-server/models"
)

// Store mirrors one timeline view of server data for the UI. Mutations apply
// locally first so the view updates immediately, then run against the server;
// a rejected call rolls the local state back and surfaces the error.
//
// Like the browser store it models, it assumes one mutation in flight at a
// time per store.
type Store struct {
	mu  sync.Mutex
	api *Client

	query   TimelineQuery
	entries []models.Entry
	cursor  string
	hasMore bool

	nextTempID int64 // temp IDs are negative so they never collide with server IDs
}

func NewStore(api *Client) *Store {
	return &Store{api: api, nextTempID: -1}
}

// Refresh replaces the store's contents with the first page for the query.
func (s *Store) Refresh(ctx context.Context, q TimelineQuery) error {
	q.Cursor = ""
	entries, cursor, err := s.api.ListEntries(ctx, q)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.entries = entries
	s.cursor = cursor
	s.hasMore = cursor != ""
	return nil
}

// LoadMore appends the next page. No-op when the timeline is exhausted.
func (s *Store) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	q := s.query
	q.Cursor = s.cursor
	s.mu.Unlock()

	entries, cursor, err := s.api.ListEntries(ctx, q)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	s.cursor = cursor
	s.hasMore = cursor != ""
	return nil
}

// Entries returns a snapshot of the current view.
func (s *Store) Entries() []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// HasMore reports whether LoadMore would fetch anything.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// CreateEntry shows the entry immediately under a temporary ID, then creates
// it server-side and swaps in the server's version.
func (s *Store) CreateEntry(ctx context.Context, in EntryInput) (*models.Entry, error) {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	s.mu.Lock()
	snapshot := s.snapshotLocked()
	tempID := s.nextTempID
	s.nextTempID--
	temp := models.Entry{
		ID:        tempID,
		EntityID:  in.EntityID,
		Timestamp: ts,
		Notes:     in.Notes,
		Value:     in.Value,
		Location:  in.Location,
	}
	s.entries = append(s.entries, temp)
	s.sortLocked()
	s.mu.Unlock()

	created, err := s.api.CreateEntry(ctx, in)
	if err != nil {
		s.restore(snapshot)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == tempID {
			s.entries[i] = *created
			break
		}
	}
	s.sortLocked()
	s.mu.Unlock()
	return created, nil
}

// UpdateEntry applies the change locally, then persists it.
func (s *Store) UpdateEntry(ctx context.Context, id int64, in EntryInput) (*models.Entry, error) {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].EntityID = in.EntityID
			if !in.Timestamp.IsZero() {
				s.entries[i].Timestamp = in.Timestamp
			}
			s.entries[i].Notes = in.Notes
			s.entries[i].Value = in.Value
			s.entries[i].Location = in.Location
			break
		}
	}
	s.sortLocked()
	s.mu.Unlock()

	updated, err := s.api.UpdateEntry(ctx, id, in)
	if err != nil {
		s.restore(snapshot)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i] = *updated
			break
		}
	}
	s.sortLocked()
	s.mu.Unlock()
	return updated, nil
}

// DeleteEntry drops the entry locally, then deletes it server-side.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.mu.Unlock()

	if err := s.api.DeleteEntry(ctx, id); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// ToggleArchive flips the archived flag locally, then persists. When the view
// excludes archived entries, a newly archived one drops out of it.
func (s *Store) ToggleArchive(ctx context.Context, id int64) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID == id {
			e.Archived = !e.Archived
			if e.Archived && !s.query.IncludeArchived {
				continue
			}
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.mu.Unlock()

	if _, err := s.api.ToggleArchiveEntry(ctx, id); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) snapshotLocked() []models.Entry {
	snap := make([]models.Entry, len(s.entries))
	copy(snap, s.entries)
	return snap
}

func (s *Store) restore(snapshot []models.Entry) {
	s.mu.Lock()
	s.entries = snapshot
	s.mu.Unlock()
}

// sortLocked keeps the view in the query's timeline order.
func (s *Store) sortLocked() {
	asc := s.query.Ascending
	sort.SliceStable(s.entries, func(i, j int) bool {
		a, b := s.entries[i], s.entries[j]
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
}
