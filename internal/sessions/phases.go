package sessions

// Phase is the current step of the fixed questionnaire sequence.
type Phase string

const (
	PhaseResumeCheck         Phase = "RESUME_CHECK"
	PhaseSkillExtraction     Phase = "SKILL_EXTRACTION"
	PhasePersonalBackground  Phase = "PERSONAL_BACKGROUND"
	PhaseCareerGoals         Phase = "CAREER_GOALS"
	PhaseSkillsAssessment    Phase = "SKILLS_ASSESSMENT"
	PhaseWorkExperience      Phase = "WORK_EXPERIENCE"
	PhaseJobReadiness        Phase = "JOB_READINESS"
	PhasePersonalConstraints Phase = "PERSONAL_CONSTRAINTS"
	PhaseAIAnalysis          Phase = "AI_ANALYSIS"
	PhasePostCounselling     Phase = "POST_COUNSELLING"
	PhaseCompleted           Phase = "COMPLETED"
)

// phaseOrder is the fixed forward sequence a session walks through.
var phaseOrder = []Phase{
	PhaseResumeCheck,
	PhaseSkillExtraction,
	PhasePersonalBackground,
	PhaseCareerGoals,
	PhaseSkillsAssessment,
	PhaseWorkExperience,
	PhaseJobReadiness,
	PhasePersonalConstraints,
	PhaseAIAnalysis,
	PhasePostCounselling,
	PhaseCompleted,
}

// nextPhase maps each question section to the phase entered when the caller
// advances out of it. Advancing out of the last section hands off to AI
// analysis.
var nextPhase = map[Phase]Phase{
	PhasePersonalBackground:  PhaseCareerGoals,
	PhaseCareerGoals:         PhaseSkillsAssessment,
	PhaseSkillsAssessment:    PhaseWorkExperience,
	PhaseWorkExperience:      PhaseJobReadiness,
	PhaseJobReadiness:        PhasePersonalConstraints,
	PhasePersonalConstraints: PhaseAIAnalysis,
}

// ValidPhase reports whether p is one of the known phases.
func ValidPhase(p Phase) bool {
	for _, known := range phaseOrder {
		if p == known {
			return true
		}
	}
	return false
}

// NextPhase returns the phase entered when advancing out of a question
// section. The second return is false when section is not an advanceable
// question section.
func NextPhase(section Phase) (Phase, bool) {
	next, ok := nextPhase[section]
	return next, ok
}
