package report

import (
	"bufio"
	"strings"
)

// parse targets: which field of Analysis the scanner is currently filling.
type target int

const (
	targetNone target = iota
	targetCareerSummary
	targetResumeAlignment
	targetSkillStrengths
	targetSkillGaps
	targetRoadmapImmediate
	targetRoadmapShortTerm
	targetRoadmapLongTerm
	targetResumeTips
	targetJobStrategy
	targetConfidenceGuidance
)

type headingRule struct {
	phrases []string
	target  target
}

// headingRules are checked in order; sub-horizon phrases come before the
// roadmap heading itself so "0-3 MONTHS" wins over "LEARNING ROADMAP".
var headingRules = []headingRule{
	{phrases: []string{"0-3 MONTHS", "IMMEDIATE ACTIONS"}, target: targetRoadmapImmediate},
	{phrases: []string{"3-6 MONTHS", "SHORT TERM", "SHORT-TERM"}, target: targetRoadmapShortTerm},
	{phrases: []string{"6-12 MONTHS", "LONG TERM", "LONG-TERM"}, target: targetRoadmapLongTerm},
	{phrases: []string{"CURRENT CAREER POSITION"}, target: targetCareerSummary},
	{phrases: []string{"RESUME AND GOAL ALIGNMENT", "RESUME/GOAL ALIGNMENT", "GOAL ALIGNMENT"}, target: targetResumeAlignment},
	{phrases: []string{"SKILL STRENGTHS"}, target: targetSkillStrengths},
	{phrases: []string{"SKILL GAPS"}, target: targetSkillGaps},
	{phrases: []string{"LEARNING ROADMAP"}, target: targetRoadmapImmediate},
	{phrases: []string{"RESUME IMPROVEMENT"}, target: targetResumeTips},
	{phrases: []string{"JOB APPLICATION STRATEGY", "APPLICATION STRATEGY"}, target: targetJobStrategy},
	{phrases: []string{"CONFIDENCE AND MOTIVATION", "CONFIDENCE GUIDANCE", "MOTIVATION GUIDANCE"}, target: targetConfidenceGuidance},
}

// Parse scans the raw model response line by line and fills an Analysis.
// Section boundaries are detected by case-insensitive substring match against
// known heading phrases; within a section, bullet and numbered lines become
// list items and remaining text accumulates into the section's scalar field.
// There is no terminator: lines under an unrecognized sub-heading attach to
// the previous recognized section. Malformed input degrades to empty fields,
// never an error.
func Parse(raw string) Analysis {
	var a Analysis
	var buffers [targetConfidenceGuidance + 1][]string
	current := targetNone

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if t, ok := matchHeading(line); ok {
			current = t
			continue
		}
		if current == targetNone {
			continue
		}

		if item, ok := listItem(line); ok {
			switch current {
			case targetSkillStrengths:
				a.SkillStrengths = append(a.SkillStrengths, item)
			case targetSkillGaps:
				a.SkillGaps = append(a.SkillGaps, item)
			case targetRoadmapImmediate:
				a.Roadmap.Immediate = append(a.Roadmap.Immediate, item)
			case targetRoadmapShortTerm:
				a.Roadmap.ShortTerm = append(a.Roadmap.ShortTerm, item)
			case targetRoadmapLongTerm:
				a.Roadmap.LongTerm = append(a.Roadmap.LongTerm, item)
			case targetResumeTips:
				a.ResumeTips = append(a.ResumeTips, item)
			default:
				// Bullets under a scalar section read as prose.
				buffers[current] = append(buffers[current], item)
			}
			continue
		}

		buffers[current] = append(buffers[current], cleanLine(line))
	}

	a.CareerSummary = strings.Join(buffers[targetCareerSummary], " ")
	a.ResumeAlignment = strings.Join(buffers[targetResumeAlignment], " ")
	a.JobStrategy = strings.Join(buffers[targetJobStrategy], " ")
	a.ConfidenceGuidance = strings.Join(buffers[targetConfidenceGuidance], " ")
	return a
}

func matchHeading(line string) (target, bool) {
	upper := strings.ToUpper(line)
	for _, rule := range headingRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(upper, phrase) {
				return rule.target, true
			}
		}
	}
	return targetNone, false
}

// listItem strips a leading bullet ("-", "*") or numbered-list marker ("N.")
// and reports whether the line was a list entry.
func listItem(line string) (string, bool) {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return strings.TrimSpace(line[2:]), true
	}
	if line == "-" || line == "*" {
		return "", false
	}
	// Numbered markers: one or more digits followed by a dot.
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && line[i] == '.' {
		item := strings.TrimSpace(line[i+1:])
		if item != "" {
			return item, true
		}
	}
	return "", false
}

// cleanLine drops markdown header and emphasis markers from prose lines.
func cleanLine(line string) string {
	line = strings.TrimLeft(line, "#")
	line = strings.ReplaceAll(line, "**", "")
	return strings.TrimSpace(line)
}
