package report

// Analysis is the structured career report parsed from the model's free-text
// response. List fields come from bullet lines, scalar fields from free-text
// paragraphs. A partial parse is valid: missing sections stay empty.
type Analysis struct {
	CareerSummary      string   `json:"careerSummary,omitempty"`
	ResumeAlignment    string   `json:"resumeAlignment,omitempty"`
	SkillStrengths     []string `json:"skillStrengths,omitempty"`
	SkillGaps          []string `json:"skillGaps,omitempty"`
	Roadmap            Roadmap  `json:"learningRoadmap"`
	ResumeTips         []string `json:"resumeTips,omitempty"`
	JobStrategy        string   `json:"jobStrategy,omitempty"`
	ConfidenceGuidance string   `json:"confidenceGuidance,omitempty"`
}

// Roadmap splits the learning plan into three time horizons.
type Roadmap struct {
	Immediate []string `json:"immediate,omitempty"` // 0-3 months
	ShortTerm []string `json:"shortTerm,omitempty"` // 3-6 months
	LongTerm  []string `json:"longTerm,omitempty"`  // 6-12 months
}

// Skill is one entry of the candidate's validated skill list.
type Skill struct {
	Name       string
	Confidence string
	Usage      string
}

// Section is one question section rendered for the prompt.
type Section struct {
	Title  string
	Fields map[string]string
}

// Bundle is everything the generator needs from a completed session.
type Bundle struct {
	ResumeSummary    string
	Skills           []Skill
	AdditionalSkills []string
	Sections         []Section
}
