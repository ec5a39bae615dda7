package report

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeLLM struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeLLM) Complete(ctx context.Context, model, prompt string) (string, error) {
	f.calls = append(f.calls, model)
	if err, ok := f.errs[model]; ok {
		return "", err
	}
	return f.responses[model], nil
}

func TestGenerateFirstModelWins(t *testing.T) {
	llm := &fakeLLM{responses: map[string]string{
		"model-a": "## SKILL GAPS\n- Gap A",
	}}
	gen := NewGenerator(llm, []string{"model-a", "model-b"})

	analysis, raw, err := gen.Generate(context.Background(), Bundle{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(llm.calls) != 1 || llm.calls[0] != "model-a" {
		t.Fatalf("calls = %v", llm.calls)
	}
	if raw != "## SKILL GAPS\n- Gap A" {
		t.Fatalf("raw = %q", raw)
	}
	if len(analysis.SkillGaps) != 1 || analysis.SkillGaps[0] != "Gap A" {
		t.Fatalf("skillGaps = %v", analysis.SkillGaps)
	}
}

func TestGenerateFallsBackInOrder(t *testing.T) {
	llm := &fakeLLM{
		errs: map[string]error{
			"model-a": errors.New("quota exceeded"),
			"model-b": errors.New("timeout"),
		},
		responses: map[string]string{
			"model-c": "## JOB APPLICATION STRATEGY\nApply widely.",
		},
	}
	gen := NewGenerator(llm, []string{"model-a", "model-b", "model-c"})

	analysis, _, err := gen.Generate(context.Background(), Bundle{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []string{"model-a", "model-b", "model-c"}
	if len(llm.calls) != len(want) {
		t.Fatalf("calls = %v", llm.calls)
	}
	for i, model := range want {
		if llm.calls[i] != model {
			t.Fatalf("call %d = %s, want %s", i, llm.calls[i], model)
		}
	}
	if analysis.JobStrategy != "Apply widely." {
		t.Fatalf("jobStrategy = %q", analysis.JobStrategy)
	}
}

func TestGenerateAllModelsFail(t *testing.T) {
	llm := &fakeLLM{errs: map[string]error{
		"model-a": errors.New("quota exceeded"),
		"model-b": errors.New("server error"),
	}}
	gen := NewGenerator(llm, []string{"model-a", "model-b"})

	_, _, err := gen.Generate(context.Background(), Bundle{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") || !strings.Contains(err.Error(), "server error") {
		t.Fatalf("aggregate error should carry per-model failures: %v", err)
	}
}

func TestGenerateEmptyResponseCountsAsFailure(t *testing.T) {
	llm := &fakeLLM{responses: map[string]string{
		"model-a": "   ",
		"model-b": "## SKILL GAPS\n- Gap A",
	}}
	gen := NewGenerator(llm, []string{"model-a", "model-b"})

	analysis, _, err := gen.Generate(context.Background(), Bundle{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(llm.calls) != 2 {
		t.Fatalf("calls = %v", llm.calls)
	}
	if len(analysis.SkillGaps) != 1 {
		t.Fatalf("skillGaps = %v", analysis.SkillGaps)
	}
}

func TestGenerateNoModelsConfigured(t *testing.T) {
	gen := NewGenerator(&fakeLLM{}, nil)

	if _, _, err := gen.Generate(context.Background(), Bundle{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildPromptIncludesProfile(t *testing.T) {
	b := Bundle{
		ResumeSummary:    "Name: Test Resume",
		Skills:           []Skill{{Name: "Go", Confidence: "Intermediate", Usage: "Unused"}},
		AdditionalSkills: []string{"Public speaking"},
		Sections: []Section{
			{Title: "Career Goals", Fields: map[string]string{"immediateGoal": "first job"}},
		},
	}

	prompt := BuildPrompt(b)

	for _, want := range []string{
		"Name: Test Resume",
		"Go",
		"Public speaking",
		"immediateGoal: first job",
		"CURRENT CAREER POSITION",
		"RESUME AND GOAL ALIGNMENT",
		"SKILL STRENGTHS",
		"SKILL GAPS",
		"LEARNING ROADMAP",
		"0-3 MONTHS (IMMEDIATE ACTIONS)",
		"3-6 MONTHS (SHORT TERM)",
		"6-12 MONTHS (LONG TERM)",
		"RESUME IMPROVEMENT TIPS",
		"JOB APPLICATION STRATEGY",
		"CONFIDENCE AND MOTIVATION GUIDANCE",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
