package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. The list fields live in jsonb columns.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
	id, user_id, name, skills, work_experience, projects, education,
	file_name, storage_key, extracted_text_key, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`

	skills, err := json.Marshal(resume.Skills)
	if err != nil {
		return err
	}
	experience, err := json.Marshal(resume.WorkExperience)
	if err != nil {
		return err
	}
	projects, err := json.Marshal(resume.Projects)
	if err != nil {
		return err
	}
	education, err := json.Marshal(resume.Education)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Name,
		skills,
		experience,
		projects,
		education,
		resume.FileName,
		resume.StorageKey,
		resume.ExtractedTextKey,
		resume.CreatedAt,
	)
	return err
}

const resumeColumns = `
id, user_id, name, skills, work_experience, projects, education,
file_name, storage_key, extracted_text_key, extracted_at, created_at, updated_at`

// GetByID returns a resume by id, scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := `SELECT` + resumeColumns + `
FROM resumes WHERE id = $1 AND user_id = $2 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, resumeID, userID)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ListByUser returns the user's resumes, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	query := `SELECT` + resumeColumns + `
FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// UpdateExtraction records the derived text key and any skills pulled from it.
func (r *PGRepo) UpdateExtraction(ctx context.Context, userID, resumeID, extractedTextKey string, skills []string) error {
	const query = `
UPDATE resumes
SET extracted_text_key = $1,
    extracted_at = now(),
    skills = CASE WHEN $2::jsonb IS NOT NULL THEN $2::jsonb ELSE skills END,
    updated_at = now()
WHERE id = $3 AND user_id = $4`

	var skillsPayload any
	if len(skills) > 0 {
		payload, err := json.Marshal(skills)
		if err != nil {
			return err
		}
		skillsPayload = payload
	}

	res, err := r.DB.ExecContext(ctx, query, extractedTextKey, skillsPayload, resumeID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var skills, experience, projects, education []byte
	var fileName, storageKey, extractedKey sql.NullString
	var extractedAt sql.NullTime

	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Name,
		&skills,
		&experience,
		&projects,
		&education,
		&fileName,
		&storageKey,
		&extractedKey,
		&extractedAt,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if len(skills) > 0 {
		_ = json.Unmarshal(skills, &resume.Skills)
	}
	if len(experience) > 0 {
		_ = json.Unmarshal(experience, &resume.WorkExperience)
	}
	if len(projects) > 0 {
		_ = json.Unmarshal(projects, &resume.Projects)
	}
	if len(education) > 0 {
		_ = json.Unmarshal(education, &resume.Education)
	}
	if fileName.Valid {
		resume.FileName = fileName.String
	}
	if storageKey.Valid {
		resume.StorageKey = storageKey.String
	}
	if extractedKey.Valid {
		resume.ExtractedTextKey = extractedKey.String
	}
	if extractedAt.Valid {
		resume.ExtractedAt = &extractedAt.Time
	}
	return resume, nil
}
