package sessions

import (
	"time"

	"counsel-backend/internal/report"
)

const (
	StatusInProgress = "IN_PROGRESS"
	StatusAwaitingAI = "AWAITING_AI"
	StatusCompleted  = "COMPLETED"
	StatusAbandoned  = "ABANDONED"
)

// Skill confidence levels.
const (
	ConfidenceBeginner     = "Beginner"
	ConfidenceIntermediate = "Intermediate"
	ConfidenceAdvanced     = "Advanced"
)

// Skill usage contexts.
const (
	UsageAcademic     = "Academic"
	UsagePersonal     = "Personal"
	UsageProfessional = "Professional"
	UsageUnused       = "Unused"
)

// ExtractedSkill is a skill derived from a resume or manual entry,
// pending user validation.
type ExtractedSkill struct {
	Name       string `json:"name"`
	Confidence string `json:"confidence"`
	Usage      string `json:"usage"`
	Validated  bool   `json:"validated"`
}

// SkillAssessmentResults records the outcome of a post-report skill assessment.
type SkillAssessmentResults struct {
	SkillName   string     `json:"skillName"`
	Score       int        `json:"score"`
	WeakAreas   []string   `json:"weakAreas,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
	TakenAt     *time.Time `json:"takenAt,omitempty"`
}

// MockInterviewResults records the outcome of a post-report mock interview.
type MockInterviewResults struct {
	Role                string     `json:"role"`
	InterviewType       string     `json:"interviewType"`
	CommunicationRating int        `json:"communicationRating"`
	TechnicalRating     int        `json:"technicalRating"`
	ConfidenceRating    int        `json:"confidenceRating"`
	Feedback            string     `json:"feedback,omitempty"`
	TakenAt             *time.Time `json:"takenAt,omitempty"`
}

// PostCounsellingActions tracks optional follow-up actions after the report.
type PostCounsellingActions struct {
	SkillAssessmentTaken   bool                    `json:"skillAssessmentTaken"`
	SkillAssessmentResults *SkillAssessmentResults `json:"skillAssessmentResults,omitempty"`
	MockInterviewTaken     bool                    `json:"mockInterviewTaken"`
	MockInterviewResults   *MockInterviewResults   `json:"mockInterviewResults,omitempty"`
}

// Session is one user's counselling interaction record. It is created at
// session start, mutated across the questionnaire, marked complete after
// report generation, and optionally further mutated by post-report actions.
// It is never deleted.
type Session struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	HasResume        bool             `json:"hasResume"`
	SelectedResumeID string           `json:"selectedResumeId,omitempty"`
	ExtractedSkills  []ExtractedSkill `json:"extractedSkills,omitempty"`
	AdditionalSkills []string         `json:"additionalSkills,omitempty"`

	Sections SectionSet `json:"sections"`

	CurrentPhase    Phase  `json:"currentPhase"`
	CurrentQuestion int    `json:"currentQuestion"`
	SessionStatus   string `json:"sessionStatus"`

	Analysis  *report.Analysis `json:"aiAnalysis,omitempty"`
	RawReport string           `json:"rawReport,omitempty"`

	PostActions PostCounsellingActions `json:"postCounsellingActions"`

	// Version increments on every write; stale updates are rejected.
	Version int `json:"version"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
