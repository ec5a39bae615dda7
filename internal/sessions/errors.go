package sessions

import "errors"

var (
	// ErrSessionNotFound covers both unknown ids and sessions owned by
	// someone else; callers cannot distinguish the two.
	ErrSessionNotFound = errors.New("session not found")
	ErrResumeNotFound  = errors.New("resume not found")
	ErrUnknownSection  = errors.New("unknown section")
	// ErrConflict is returned when a write carries a stale version.
	ErrConflict = errors.New("session version conflict")
	// ErrNotAwaitingAnalysis is returned when report generation is requested
	// before the questionnaire is finished or after it already succeeded.
	ErrNotAwaitingAnalysis = errors.New("session is not awaiting analysis")
)
