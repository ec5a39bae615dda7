package sessions

import (
	"encoding/json"
	"fmt"
)

// Each question section is a concrete partial record: pointer fields so a
// write can carry any subset of keys, with overlay merge preserving keys the
// patch does not mention.

// PersonalBackground covers the user's education and location.
type PersonalBackground struct {
	CurrentStatus        *string `json:"currentStatus,omitempty"`
	HighestQualification *string `json:"highestQualification,omitempty"`
	FieldOfEducation     *string `json:"fieldOfEducation,omitempty"`
	CurrentLocation      *string `json:"currentLocation,omitempty"`
	PreferredJobLocation *string `json:"preferredJobLocation,omitempty"`
}

// CareerGoals covers the user's short- and long-term direction.
type CareerGoals struct {
	ImmediateGoal     *string  `json:"immediateGoal,omitempty"`
	LongTermGoal      *string  `json:"longTermGoal,omitempty"`
	TargetRoles       []string `json:"targetRoles,omitempty"`
	TargetIndustry    *string  `json:"targetIndustry,omitempty"`
	CareerPathClarity *string  `json:"careerPathClarity,omitempty"`
}

// SkillsAssessment covers the user's self-assessed skill profile.
type SkillsAssessment struct {
	StrongestSkill          *string  `json:"strongestSkill,omitempty"`
	LeastConfidentSkill     *string  `json:"leastConfidentSkill,omitempty"`
	CurrentlyLearningSkills []string `json:"currentlyLearningSkills,omitempty"`
	DailyLearningTime       *string  `json:"dailyLearningTime,omitempty"`
}

// WorkExperience covers employment history.
type WorkExperience struct {
	HasExperience        *bool   `json:"hasExperience,omitempty"`
	TotalYearsExperience *string `json:"totalYearsExperience,omitempty"`
	CurrentJobTitle      *string `json:"currentJobTitle,omitempty"`
	KeyResponsibilities  *string `json:"keyResponsibilities,omitempty"`
	BiggestChallenge     *string `json:"biggestChallenge,omitempty"`
	ReasonForJobChange   *string `json:"reasonForJobChange,omitempty"`
	HasInternships       *bool   `json:"hasInternships,omitempty"`
	HasRealWorldProjects *bool   `json:"hasRealWorldProjects,omitempty"`
}

// JobReadiness covers application history and confidence.
type JobReadiness struct {
	ResumeConfidence       *string `json:"resumeConfidence,omitempty"`
	HasAppliedToJobs       *bool   `json:"hasAppliedToJobs,omitempty"`
	InterviewCallFrequency *string `json:"interviewCallFrequency,omitempty"`
	BiggestChallenge       *string `json:"biggestChallenge,omitempty"`
}

// PersonalConstraints covers time, money and learning-style limits.
type PersonalConstraints struct {
	DailyTimeAvailable      *string `json:"dailyTimeAvailable,omitempty"`
	HasFinancialConstraints *bool   `json:"hasFinancialConstraints,omitempty"`
	PreferredLearningStyle  *string `json:"preferredLearningStyle,omitempty"`
	CareerStressLevel       *string `json:"careerStressLevel,omitempty"`
	OpenToReskilling        *bool   `json:"openToReskilling,omitempty"`
}

// SectionSet holds all six question sections of a session.
type SectionSet struct {
	PersonalBackground  PersonalBackground  `json:"personalBackground"`
	CareerGoals         CareerGoals         `json:"careerGoals"`
	SkillsAssessment    SkillsAssessment    `json:"skillsAssessment"`
	WorkExperience      WorkExperience      `json:"workExperience"`
	JobReadiness        JobReadiness        `json:"jobReadiness"`
	PersonalConstraints PersonalConstraints `json:"personalConstraints"`
}

// Overlay merges patch onto base: keys present in patch win, keys absent in
// patch keep their base value. Implemented over the JSON form so every
// section type shares one merge.
func Overlay[S any](base S, patch S) (S, error) {
	var zero S
	baseJSON, err := json.Marshal(base)
	if err != nil {
		return zero, fmt.Errorf("overlay marshal base: %w", err)
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return zero, fmt.Errorf("overlay marshal patch: %w", err)
	}

	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(baseJSON, &merged); err != nil {
		return zero, fmt.Errorf("overlay unmarshal base: %w", err)
	}
	var patchMap map[string]json.RawMessage
	if err := json.Unmarshal(patchJSON, &patchMap); err != nil {
		return zero, fmt.Errorf("overlay unmarshal patch: %w", err)
	}
	for k, v := range patchMap {
		merged[k] = v
	}

	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return zero, fmt.Errorf("overlay marshal merged: %w", err)
	}
	var out S
	if err := json.Unmarshal(mergedJSON, &out); err != nil {
		return zero, fmt.Errorf("overlay unmarshal merged: %w", err)
	}
	return out, nil
}

// MergeSection decodes data as the named section's partial record and overlays
// it onto the stored section. Unknown keys in data are dropped at decode time;
// section contents are otherwise persisted as submitted.
func (s *SectionSet) MergeSection(section Phase, data json.RawMessage) error {
	switch section {
	case PhasePersonalBackground:
		return mergeInto(&s.PersonalBackground, data)
	case PhaseCareerGoals:
		return mergeInto(&s.CareerGoals, data)
	case PhaseSkillsAssessment:
		return mergeInto(&s.SkillsAssessment, data)
	case PhaseWorkExperience:
		return mergeInto(&s.WorkExperience, data)
	case PhaseJobReadiness:
		return mergeInto(&s.JobReadiness, data)
	case PhasePersonalConstraints:
		return mergeInto(&s.PersonalConstraints, data)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
}

func mergeInto[S any](dst *S, data json.RawMessage) error {
	var patch S
	if len(data) > 0 {
		if err := json.Unmarshal(data, &patch); err != nil {
			return fmt.Errorf("decode section payload: %w", err)
		}
	}
	merged, err := Overlay(*dst, patch)
	if err != nil {
		return err
	}
	*dst = merged
	return nil
}

// fieldMap flattens a section record to its non-empty key/value pairs for
// prompt assembly. Values are rendered from the JSON form.
func fieldMap(section any) map[string]string {
	raw, err := json.Marshal(section)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			out[k] = val
		case bool:
			if val {
				out[k] = "yes"
			} else {
				out[k] = "no"
			}
		case []any:
			joined := ""
			for i, item := range val {
				if i > 0 {
					joined += ", "
				}
				joined += fmt.Sprint(item)
			}
			out[k] = joined
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
