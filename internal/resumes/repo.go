package resumes

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("resume not found")

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	UpdateExtraction(ctx context.Context, userID, resumeID, extractedTextKey string, skills []string) error
}
