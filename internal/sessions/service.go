package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"counsel-backend/internal/report"
	"counsel-backend/internal/resumes"
	"counsel-backend/internal/shared/metrics"
	"counsel-backend/internal/shared/telemetry"
)

// Service contains business logic for counselling sessions.
type Service struct {
	Repo      Repo
	Resumes   *resumes.Service
	Generator *report.Generator
}

// StartResult is what session start returns: either a fresh session or the
// caller's existing in-progress one, plus the resume summaries the client
// needs for the resume-check step.
type StartResult struct {
	Session   Session
	Resumed   bool
	HasResume bool
	Resumes   []resumes.Summary
}

// Start returns the user's in-progress session or creates a new one in
// RESUME_CHECK. The one-active-session rule is a lookup-before-create check,
// not a uniqueness constraint.
func (s *Service) Start(ctx context.Context, userID string) (StartResult, error) {
	if strings.TrimSpace(userID) == "" {
		return StartResult{}, errors.New("userID is required")
	}

	summaries, err := s.Resumes.Summaries(ctx, userID)
	if err != nil {
		return StartResult{}, fmt.Errorf("list resumes: %w", err)
	}

	if existing, err := s.Repo.GetActiveByUser(ctx, userID); err == nil {
		return StartResult{
			Session:   existing,
			Resumed:   true,
			HasResume: len(summaries) > 0,
			Resumes:   summaries,
		}, nil
	} else if !errors.Is(err, ErrSessionNotFound) {
		return StartResult{}, err
	}

	now := time.Now().UTC()
	session := Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		CurrentPhase:  PhaseResumeCheck,
		SessionStatus: StatusInProgress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return StartResult{}, err
	}

	telemetry.Info("session.status", map[string]any{
		"session_id": session.ID,
		"user_id":    userID,
		"phase":      string(session.CurrentPhase),
		"status":     session.SessionStatus,
	})

	return StartResult{
		Session:   session,
		HasResume: len(summaries) > 0,
		Resumes:   summaries,
	}, nil
}

// SelectResume seeds the session's skill list from a stored resume or from
// manually entered skill names, then advances to SKILL_EXTRACTION. A missing
// resume aborts with ErrResumeNotFound and leaves the session unmodified.
func (s *Service) SelectResume(ctx context.Context, userID, sessionID, resumeID string, manualSkills []string) (Session, error) {
	session, err := s.Repo.GetByID(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}

	if resumeID != "" {
		resume, err := s.Resumes.Get(ctx, userID, resumeID)
		if err != nil {
			if errors.Is(err, resumes.ErrNotFound) {
				return Session{}, ErrResumeNotFound
			}
			return Session{}, err
		}
		session.HasResume = true
		session.SelectedResumeID = resume.ID
		session.ExtractedSkills = defaultSkills(resume.Skills, ConfidenceIntermediate)
	} else {
		session.HasResume = false
		session.SelectedResumeID = ""
		session.ExtractedSkills = defaultSkills(manualSkills, ConfidenceBeginner)
	}

	session.CurrentPhase = PhaseSkillExtraction
	session.CurrentQuestion = 0
	return s.Repo.Update(ctx, session)
}

func defaultSkills(names []string, confidence string) []ExtractedSkill {
	out := make([]ExtractedSkill, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, ExtractedSkill{
			Name:       name,
			Confidence: confidence,
			Usage:      UsageUnused,
			Validated:  false,
		})
	}
	return out
}

// ValidateSkills replaces the extracted skill list with the user-edited one,
// marks every entry validated, stores additional free-text skills, and
// advances to PERSONAL_BACKGROUND.
func (s *Service) ValidateSkills(ctx context.Context, userID, sessionID string, validated []ExtractedSkill, additional []string) (Session, error) {
	session, err := s.Repo.GetByID(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}

	for i := range validated {
		validated[i].Validated = true
	}
	session.ExtractedSkills = validated
	session.AdditionalSkills = additional
	session.CurrentPhase = PhasePersonalBackground
	session.CurrentQuestion = 0
	return s.Repo.Update(ctx, session)
}

// SaveSection merges a partial answer map into the named section and either
// stays in place (recording the next question to show) or advances to the
// section's fixed next phase. The section name addresses the stored map; it
// is deliberately not validated against currentPhase.
func (s *Service) SaveSection(ctx context.Context, userID, sessionID string, section Phase, data json.RawMessage, advance bool, questionIndex *int) (Session, error) {
	session, err := s.Repo.GetByID(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}

	if err := session.Sections.MergeSection(section, data); err != nil {
		return Session{}, err
	}

	if !advance {
		if questionIndex != nil && *questionIndex >= 0 {
			// The question just answered becomes the next question to show.
			session.CurrentQuestion = *questionIndex + 1
		}
		return s.Repo.Update(ctx, session)
	}

	next, ok := NextPhase(section)
	if !ok {
		return Session{}, fmt.Errorf("%w: %s is not advanceable", ErrUnknownSection, section)
	}
	from := session.CurrentPhase
	session.CurrentPhase = next
	session.CurrentQuestion = 0
	if section == PhasePersonalConstraints {
		session.SessionStatus = StatusAwaitingAI
	}

	updated, err := s.Repo.Update(ctx, session)
	if err != nil {
		return Session{}, err
	}
	telemetry.Info("session.status", map[string]any{
		"session_id":       session.ID,
		"user_id":          userID,
		"phase":            string(next),
		"status":           updated.SessionStatus,
		"phase_transition": fmt.Sprintf("%s->%s", from, next),
	})
	return updated, nil
}

// Get returns the full session record.
func (s *Service) Get(ctx context.Context, userID, sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, errors.New("sessionID is required")
	}
	return s.Repo.GetByID(ctx, userID, sessionID)
}

// List returns the user's sessions newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Session, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// GenerateAnalysis runs the report generator over the completed questionnaire.
// On exhaustion of the model fallback list the session is left in AI_ANALYSIS
// untouched so the client can retry the whole call.
func (s *Service) GenerateAnalysis(ctx context.Context, userID, sessionID string) (Session, error) {
	session, err := s.Repo.GetByID(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.CurrentPhase != PhaseAIAnalysis || session.Analysis != nil {
		return Session{}, ErrNotAwaitingAnalysis
	}

	bundle := s.buildBundle(ctx, session)

	metrics.IncReportStarted()
	startedAt := time.Now().UTC()

	analysis, raw, err := s.Generator.Generate(ctx, bundle)
	if err != nil {
		metrics.IncReportFailed()
		telemetry.Error("report.generate", map[string]any{
			"session_id": session.ID,
			"user_id":    userID,
			"error":      sanitizeError(err),
		})
		return Session{}, err
	}

	completedAt := time.Now().UTC()
	session.Analysis = &analysis
	session.RawReport = raw
	session.CurrentPhase = PhasePostCounselling
	session.CurrentQuestion = 0
	session.SessionStatus = StatusCompleted
	session.CompletedAt = &completedAt

	updated, err := s.Repo.Update(ctx, session)
	if err != nil {
		return Session{}, err
	}

	metrics.IncReportCompleted()
	metrics.ObserveReportDurationMs(float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0)
	telemetry.Info("session.status", map[string]any{
		"session_id":       session.ID,
		"user_id":          userID,
		"phase":            string(PhasePostCounselling),
		"status":           StatusCompleted,
		"phase_transition": fmt.Sprintf("%s->%s", PhaseAIAnalysis, PhasePostCounselling),
		"duration_ms":      float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0,
	})
	return updated, nil
}

func (s *Service) buildBundle(ctx context.Context, session Session) report.Bundle {
	b := report.Bundle{
		AdditionalSkills: session.AdditionalSkills,
	}
	for _, skill := range session.ExtractedSkills {
		b.Skills = append(b.Skills, report.Skill{
			Name:       skill.Name,
			Confidence: skill.Confidence,
			Usage:      skill.Usage,
		})
	}
	if session.SelectedResumeID != "" {
		if resume, err := s.Resumes.Get(ctx, session.UserID, session.SelectedResumeID); err == nil {
			b.ResumeSummary = s.Resumes.SummaryText(ctx, resume)
		}
	}
	b.Sections = []report.Section{
		{Title: "Personal Background", Fields: fieldMap(session.Sections.PersonalBackground)},
		{Title: "Career Goals", Fields: fieldMap(session.Sections.CareerGoals)},
		{Title: "Skills Assessment", Fields: fieldMap(session.Sections.SkillsAssessment)},
		{Title: "Work Experience", Fields: fieldMap(session.Sections.WorkExperience)},
		{Title: "Job Readiness", Fields: fieldMap(session.Sections.JobReadiness)},
		{Title: "Personal Constraints", Fields: fieldMap(session.Sections.PersonalConstraints)},
	}
	return b
}

// SaveSkillAssessment overlays skill-assessment results onto the session's
// post-counselling actions. Retaken assessments overwrite the previous block.
func (s *Service) SaveSkillAssessment(ctx context.Context, userID, sessionID string, results SkillAssessmentResults) (Session, error) {
	session, err := s.Repo.GetByID(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	if results.TakenAt == nil {
		now := time.Now().UTC()
		results.TakenAt = &now
	}
	session.PostActions.SkillAssessmentTaken = true
	session.PostActions.SkillAssessmentResults = &results
	return s.Repo.Update(ctx, session)
}

// SaveMockInterview overlays mock-interview results onto the session's
// post-counselling actions. Retaken interviews overwrite the previous block.
func (s *Service) SaveMockInterview(ctx context.Context, userID, sessionID string, results MockInterviewResults) (Session, error) {
	session, err := s.Repo.GetByID(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	if results.TakenAt == nil {
		now := time.Now().UTC()
		results.TakenAt = &now
	}
	session.PostActions.MockInterviewTaken = true
	session.PostActions.MockInterviewResults = &results
	return s.Repo.Update(ctx, session)
}

// Abandon marks the session abandoned. Phase and collected answers stay put
// in case the user returns through history.
func (s *Service) Abandon(ctx context.Context, userID, sessionID string) (Session, error) {
	session, err := s.Repo.GetByID(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	session.SessionStatus = StatusAbandoned
	return s.Repo.Update(ctx, session)
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
