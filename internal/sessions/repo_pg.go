package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"counsel-backend/internal/report"
)

// PGRepo implements Repo using Postgres. Skills, sections, the analysis and
// post-counselling actions live in jsonb columns.
type PGRepo struct {
	DB *sql.DB
}

const sessionColumns = `
id, user_id, has_resume, selected_resume_id, extracted_skills, additional_skills,
sections, current_phase, current_question, session_status, analysis, raw_report,
post_actions, version, created_at, updated_at, completed_at`

// Create inserts a new session.
func (r *PGRepo) Create(ctx context.Context, s Session) error {
	const query = `
INSERT INTO counselling_sessions (
	id, user_id, has_resume, selected_resume_id, extracted_skills, additional_skills,
	sections, current_phase, current_question, session_status, analysis, raw_report,
	post_actions, version, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)`

	skills, err := json.Marshal(s.ExtractedSkills)
	if err != nil {
		return err
	}
	additional, err := json.Marshal(s.AdditionalSkills)
	if err != nil {
		return err
	}
	sections, err := json.Marshal(s.Sections)
	if err != nil {
		return err
	}
	actions, err := json.Marshal(s.PostActions)
	if err != nil {
		return err
	}
	var analysis any
	if s.Analysis != nil {
		analysis, err = json.Marshal(s.Analysis)
		if err != nil {
			return err
		}
	}

	_, err = r.DB.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.HasResume,
		nullString(s.SelectedResumeID),
		skills,
		additional,
		sections,
		string(s.CurrentPhase),
		s.CurrentQuestion,
		s.SessionStatus,
		analysis,
		s.RawReport,
		actions,
		s.Version,
		s.CreatedAt,
	)
	return err
}

// GetByID returns a session by id, scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, sessionID string) (Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM counselling_sessions WHERE id = $1 AND user_id = $2 LIMIT 1`, sessionColumns)
	return scanSession(r.DB.QueryRowContext(ctx, query, sessionID, userID))
}

// GetActiveByUser returns the user's IN_PROGRESS session if one exists.
func (r *PGRepo) GetActiveByUser(ctx context.Context, userID string) (Session, error) {
	query := fmt.Sprintf(`
SELECT %s FROM counselling_sessions
WHERE user_id = $1 AND session_status = $2
ORDER BY created_at DESC
LIMIT 1`, sessionColumns)
	return scanSession(r.DB.QueryRowContext(ctx, query, userID, StatusInProgress))
}

// Update persists s when the stored version matches, bumping the version.
// Zero rows affected means either a stale version or a missing/foreign
// session; a follow-up existence check decides which error to surface.
func (r *PGRepo) Update(ctx context.Context, s Session) (Session, error) {
	const query = `
UPDATE counselling_sessions
SET has_resume = $1,
    selected_resume_id = $2,
    extracted_skills = $3::jsonb,
    additional_skills = $4::jsonb,
    sections = $5::jsonb,
    current_phase = $6,
    current_question = $7,
    session_status = $8,
    analysis = $9::jsonb,
    raw_report = $10,
    post_actions = $11::jsonb,
    version = version + 1,
    updated_at = now(),
    completed_at = $12
WHERE id = $13 AND user_id = $14 AND version = $15`

	skills, err := json.Marshal(s.ExtractedSkills)
	if err != nil {
		return Session{}, err
	}
	additional, err := json.Marshal(s.AdditionalSkills)
	if err != nil {
		return Session{}, err
	}
	sections, err := json.Marshal(s.Sections)
	if err != nil {
		return Session{}, err
	}
	actions, err := json.Marshal(s.PostActions)
	if err != nil {
		return Session{}, err
	}
	var analysis any
	if s.Analysis != nil {
		analysis, err = json.Marshal(s.Analysis)
		if err != nil {
			return Session{}, err
		}
	}

	res, err := r.DB.ExecContext(ctx, query,
		s.HasResume,
		nullString(s.SelectedResumeID),
		skills,
		additional,
		sections,
		string(s.CurrentPhase),
		s.CurrentQuestion,
		s.SessionStatus,
		analysis,
		s.RawReport,
		actions,
		s.CompletedAt,
		s.ID,
		s.UserID,
		s.Version,
	)
	if err != nil {
		return Session{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, getErr := r.GetByID(ctx, s.UserID, s.ID); getErr != nil {
			return Session{}, getErr
		}
		return Session{}, ErrConflict
	}

	s.Version++
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// ListByUser returns the user's sessions, newest first, with limit/offset.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
SELECT %s FROM counselling_sessions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`, sessionColumns)

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var s Session
	var selectedResumeID sql.NullString
	var skills, additional, sections, actions []byte
	var analysis sql.NullString
	var rawReport sql.NullString
	var phase string
	var completedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.HasResume,
		&selectedResumeID,
		&skills,
		&additional,
		&sections,
		&phase,
		&s.CurrentQuestion,
		&s.SessionStatus,
		&analysis,
		&rawReport,
		&actions,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}

	s.CurrentPhase = Phase(phase)
	if selectedResumeID.Valid {
		s.SelectedResumeID = selectedResumeID.String
	}
	if rawReport.Valid {
		s.RawReport = rawReport.String
	}
	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}
	if len(skills) > 0 {
		_ = json.Unmarshal(skills, &s.ExtractedSkills)
	}
	if len(additional) > 0 {
		_ = json.Unmarshal(additional, &s.AdditionalSkills)
	}
	if len(sections) > 0 {
		_ = json.Unmarshal(sections, &s.Sections)
	}
	if len(actions) > 0 {
		_ = json.Unmarshal(actions, &s.PostActions)
	}
	if analysis.Valid && analysis.String != "" {
		var parsed report.Analysis
		if err := json.Unmarshal([]byte(analysis.String), &parsed); err == nil {
			s.Analysis = &parsed
		}
	}
	return s, nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
