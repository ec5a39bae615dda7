package report

import (
	"strings"
	"testing"
)

func TestParseFullReport(t *testing.T) {
	raw := `
## 1. CURRENT CAREER POSITION
You are an early-career developer with a solid academic base.
Your profile suggests readiness for junior roles.

## 2. RESUME AND GOAL ALIGNMENT
Your resume partially supports your stated goals.

## 3. SKILL STRENGTHS
- Go
- SQL
* Communication

## 4. SKILL GAPS
- System design
- Cloud deployment

## 5. LEARNING ROADMAP

### 0-3 MONTHS (IMMEDIATE ACTIONS)
1. Finish a Go fundamentals course
2. Build one CRUD project

### 3-6 MONTHS (SHORT TERM)
- Learn Docker basics

### 6-12 MONTHS (LONG TERM)
- Contribute to an open source project

## 6. RESUME IMPROVEMENT TIPS
- Quantify achievements
- Add a projects section

## 7. JOB APPLICATION STRATEGY
Apply to ten junior roles per week and track outcomes.

## 8. CONFIDENCE AND MOTIVATION GUIDANCE
Progress compounds. Keep a weekly log of wins.
`

	a := Parse(raw)

	if !strings.Contains(a.CareerSummary, "early-career developer") {
		t.Fatalf("careerSummary = %q", a.CareerSummary)
	}
	if !strings.Contains(a.CareerSummary, "junior roles") {
		t.Fatalf("careerSummary should join paragraph lines, got %q", a.CareerSummary)
	}
	if !strings.Contains(a.ResumeAlignment, "partially supports") {
		t.Fatalf("resumeAlignment = %q", a.ResumeAlignment)
	}
	if len(a.SkillStrengths) != 3 || a.SkillStrengths[0] != "Go" || a.SkillStrengths[2] != "Communication" {
		t.Fatalf("skillStrengths = %v", a.SkillStrengths)
	}
	if len(a.SkillGaps) != 2 || a.SkillGaps[0] != "System design" {
		t.Fatalf("skillGaps = %v", a.SkillGaps)
	}
	if len(a.Roadmap.Immediate) != 2 || a.Roadmap.Immediate[0] != "Finish a Go fundamentals course" {
		t.Fatalf("roadmap immediate = %v", a.Roadmap.Immediate)
	}
	if len(a.Roadmap.ShortTerm) != 1 || a.Roadmap.ShortTerm[0] != "Learn Docker basics" {
		t.Fatalf("roadmap shortTerm = %v", a.Roadmap.ShortTerm)
	}
	if len(a.Roadmap.LongTerm) != 1 {
		t.Fatalf("roadmap longTerm = %v", a.Roadmap.LongTerm)
	}
	if len(a.ResumeTips) != 2 || a.ResumeTips[1] != "Add a projects section" {
		t.Fatalf("resumeTips = %v", a.ResumeTips)
	}
	if !strings.Contains(a.JobStrategy, "ten junior roles") {
		t.Fatalf("jobStrategy = %q", a.JobStrategy)
	}
	if !strings.Contains(a.ConfidenceGuidance, "Progress compounds") {
		t.Fatalf("confidenceGuidance = %q", a.ConfidenceGuidance)
	}
}

func TestParsePartialReport(t *testing.T) {
	raw := "## SKILL GAPS\n- Gap A\n- Gap B\n## CONFIDENCE GUIDANCE\nYou can do it."

	a := Parse(raw)

	if len(a.SkillGaps) != 2 || a.SkillGaps[0] != "Gap A" || a.SkillGaps[1] != "Gap B" {
		t.Fatalf("skillGaps = %v", a.SkillGaps)
	}
	if a.ConfidenceGuidance != "You can do it." {
		t.Fatalf("confidenceGuidance = %q", a.ConfidenceGuidance)
	}
	if a.CareerSummary != "" || len(a.SkillStrengths) != 0 {
		t.Fatalf("unexpected extra sections: %+v", a)
	}
}

func TestParseUnstructuredTextYieldsEmptyAnalysis(t *testing.T) {
	a := Parse("Here is some advice without any of the expected structure.\nGood luck!")

	if a.CareerSummary != "" || a.JobStrategy != "" || len(a.SkillGaps) != 0 || len(a.Roadmap.Immediate) != 0 {
		t.Fatalf("expected empty analysis, got %+v", a)
	}
}

func TestParseTextBeforeFirstHeadingIsDropped(t *testing.T) {
	raw := "Intro chatter from the model.\n## SKILL STRENGTHS\n- Go"

	a := Parse(raw)

	if len(a.SkillStrengths) != 1 || a.SkillStrengths[0] != "Go" {
		t.Fatalf("skillStrengths = %v", a.SkillStrengths)
	}
	if a.CareerSummary != "" {
		t.Fatalf("intro text should be dropped, got %q", a.CareerSummary)
	}
}

func TestParseRoadmapHorizonBeatsRoadmapHeading(t *testing.T) {
	// A line naming both the roadmap and a horizon must select the horizon.
	raw := "## LEARNING ROADMAP: 3-6 MONTHS\n- Item"

	a := Parse(raw)

	if len(a.Roadmap.ShortTerm) != 1 {
		t.Fatalf("shortTerm = %v", a.Roadmap.ShortTerm)
	}
	if len(a.Roadmap.Immediate) != 0 {
		t.Fatalf("immediate should be empty, got %v", a.Roadmap.Immediate)
	}
}
