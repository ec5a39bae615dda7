package sessions

import "context"

// Repo defines persistence operations for counselling sessions. Every read
// and write is addressed by session id plus owner id; a session owned by a
// different user behaves as if it did not exist.
type Repo interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, userID, sessionID string) (Session, error)
	// GetActiveByUser returns the user's IN_PROGRESS session, or
	// ErrSessionNotFound when none exists.
	GetActiveByUser(ctx context.Context, userID string) (Session, error)
	// Update persists s if the stored version matches s.Version, bumping the
	// version. A matching session with a different version fails with
	// ErrConflict.
	Update(ctx context.Context, s Session) (Session, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Session, error)
}
