package sessions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores sessions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Session
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Session),
		byUser: make(map[string][]string),
	}
}

// Create stores the session.
func (r *MemoryRepo) Create(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	r.byUser[s.UserID] = append(r.byUser[s.UserID], s.ID)
	return nil
}

// GetByID returns a session by id, scoped to its owner.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[sessionID]
	if !ok || s.UserID != userID {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

// GetActiveByUser returns the user's IN_PROGRESS session if one exists.
func (r *MemoryRepo) GetActiveByUser(ctx context.Context, userID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.byUser[userID] {
		if s, ok := r.byID[id]; ok && s.SessionStatus == StatusInProgress {
			return s, nil
		}
	}
	return Session{}, ErrSessionNotFound
}

// Update persists s when the stored version matches, bumping the version.
func (r *MemoryRepo) Update(ctx context.Context, s Session) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[s.ID]
	if !ok || stored.UserID != s.UserID {
		return Session{}, ErrSessionNotFound
	}
	if stored.Version != s.Version {
		return Session{}, ErrConflict
	}
	s.Version++
	s.UpdatedAt = time.Now().UTC()
	r.byID[s.ID] = s
	return s, nil
}

// ListByUser returns the user's sessions, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ids := r.byUser[userID]
	out := make([]Session, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Session{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
