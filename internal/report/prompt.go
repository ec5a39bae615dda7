package report

import (
	"fmt"
	"sort"
	"strings"
)

// BuildPrompt assembles the single counselling prompt. The eight numbered
// headings must stay in sync with the heading phrases the parser recognizes.
func BuildPrompt(b Bundle) string {
	var sb strings.Builder

	sb.WriteString("You are an experienced career counsellor. Analyze the candidate profile below and write a detailed career counselling report.\n\n")

	if strings.TrimSpace(b.ResumeSummary) != "" {
		sb.WriteString("RESUME SUMMARY:\n")
		sb.WriteString(strings.TrimSpace(b.ResumeSummary))
		sb.WriteString("\n\n")
	}

	if len(b.Skills) > 0 {
		sb.WriteString("VALIDATED SKILLS:\n")
		for _, s := range b.Skills {
			fmt.Fprintf(&sb, "- %s (confidence: %s, used in: %s)\n", s.Name, s.Confidence, s.Usage)
		}
		sb.WriteString("\n")
	}
	if len(b.AdditionalSkills) > 0 {
		sb.WriteString("ADDITIONAL SKILLS: ")
		sb.WriteString(strings.Join(b.AdditionalSkills, ", "))
		sb.WriteString("\n\n")
	}

	for _, section := range b.Sections {
		if len(section.Fields) == 0 {
			continue
		}
		sb.WriteString(strings.ToUpper(section.Title))
		sb.WriteString(":\n")
		keys := make([]string, 0, len(section.Fields))
		for k := range section.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s: %s\n", k, section.Fields[k])
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`Write the report with exactly these eight numbered headings, using markdown "##" headers and "-" bullet points:

## 1. CURRENT CAREER POSITION
A short summary of where the candidate stands today.

## 2. RESUME AND GOAL ALIGNMENT
How well the resume supports the stated career goals.

## 3. SKILL STRENGTHS
Bullet list of the candidate's strongest skills.

## 4. SKILL GAPS
Bullet list of missing skills, highest priority first.

## 5. LEARNING ROADMAP
Split into three sub-sections: "0-3 MONTHS (IMMEDIATE ACTIONS)", "3-6 MONTHS (SHORT TERM)" and "6-12 MONTHS (LONG TERM)", each a bullet list.

## 6. RESUME IMPROVEMENT TIPS
Bullet list of concrete resume changes.

## 7. JOB APPLICATION STRATEGY
How and where to apply.

## 8. CONFIDENCE AND MOTIVATION GUIDANCE
Encouragement grounded in the candidate's situation.
`)

	return sb.String()
}
