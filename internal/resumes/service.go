package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"counsel-backend/internal/extract"
	"counsel-backend/internal/shared/storage/object"
)

// Service contains business logic for resumes.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// promptTextLimit caps how much extracted resume text feeds the report prompt.
const promptTextLimit = 4000

// Create stores a structured resume submitted as JSON.
func (s *Service) Create(ctx context.Context, resume Resume) (Resume, error) {
	if strings.TrimSpace(resume.UserID) == "" {
		return Resume{}, errors.New("userID is required")
	}
	if strings.TrimSpace(resume.Name) == "" {
		return Resume{}, errors.New("resume name is required")
	}
	resume.ID = uuid.NewString()
	resume.CreatedAt = time.Now().UTC()
	resume.UpdatedAt = resume.CreatedAt
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Upload stores a resume file, extracts its text, and creates the resume
// record. Skills can be provided alongside since uploads carry no structure.
func (s *Service) Upload(ctx context.Context, userID, name, fileName string, skills []string, file io.Reader) (Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return Resume{}, errors.New("userID is required")
	}
	if s.Store == nil {
		return Resume{}, errors.New("object store not configured")
	}

	storageKey, _, mimeType, err := s.Store.Save(ctx, userID, fileName, file)
	if err != nil {
		return Resume{}, fmt.Errorf("store resume file: %w", err)
	}

	if _, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName); err != nil {
		return Resume{}, fmt.Errorf("extract resume text: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = fileName
	}
	resume := Resume{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             name,
		Skills:           skills,
		FileName:         fileName,
		StorageKey:       storageKey,
		ExtractedTextKey: storageKey + ".extracted.txt",
		CreatedAt:        time.Now().UTC(),
	}
	resume.UpdatedAt = resume.CreatedAt
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Get returns a resume by id, scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if resumeID == "" {
		return Resume{}, errors.New("resumeID is required")
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// Summaries lists the user's resumes in the shape session start returns.
func (s *Service) Summaries(ctx context.Context, userID string) ([]Summary, error) {
	list, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(list))
	for _, r := range list {
		out = append(out, Summarize(r))
	}
	return out, nil
}

// SummaryText renders a resume for the report prompt: structured fields first,
// then a capped slice of the extracted file text when present.
func (s *Service) SummaryText(ctx context.Context, resume Resume) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", resume.Name)
	if len(resume.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(resume.Skills, ", "))
	}
	writeList(&sb, "Work experience", resume.WorkExperience)
	writeList(&sb, "Projects", resume.Projects)
	writeList(&sb, "Education", resume.Education)

	if resume.ExtractedTextKey != "" && s.Store != nil {
		if text, err := s.loadExtractedText(ctx, resume.ExtractedTextKey); err == nil && text != "" {
			sb.WriteString("Resume text:\n")
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (s *Service) loadExtractedText(ctx context.Context, key string) (string, error) {
	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, promptTextLimit))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label)
	sb.WriteString(":\n")
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}
