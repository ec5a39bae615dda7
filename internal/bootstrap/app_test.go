package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"counsel-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *App {
	t.Helper()
	app, err := Build(config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LLMProvider:     "none",
		LLMModels:       []string{"model-a"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *App, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "guest1")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Guest-Id", "guest1")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestMissingIdentityRejected(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/counselling/sessions", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/counselling/sessions", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("start status = %d body = %s", resp.Code, resp.Body.String())
	}
	var started struct {
		SessionID string `json:"sessionId"`
		Phase     string `json:"phase"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode start: %v", err)
	}
	if started.Phase != "RESUME_CHECK" {
		t.Fatalf("phase = %s", started.Phase)
	}

	// A second start resumes the same session.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/counselling/sessions", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("restart status = %d", resp.Code)
	}
	var resumed struct {
		SessionID string `json:"sessionId"`
		Resumed   bool   `json:"resumed"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &resumed); err != nil {
		t.Fatalf("decode restart: %v", err)
	}
	if !resumed.Resumed || resumed.SessionID != started.SessionID {
		t.Fatalf("expected resumed session, got %+v", resumed)
	}

	base := "/api/v1/counselling/sessions/" + started.SessionID

	resp = doJSON(t, app, http.MethodPost, base+"/resume", map[string]any{
		"manualSkills": []string{"Go", "SQL"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("select resume status = %d body = %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app, http.MethodPost, base+"/skills/validate", map[string]any{
		"validatedSkills": []map[string]any{
			{"name": "Go", "confidence": "Beginner", "usage": "Unused"},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("validate skills status = %d body = %s", resp.Code, resp.Body.String())
	}

	sections := []struct {
		name    string
		payload map[string]any
	}{
		{"PERSONAL_BACKGROUND", map[string]any{"currentStatus": "student"}},
		{"CAREER_GOALS", map[string]any{"immediateGoal": "first job"}},
		{"SKILLS_ASSESSMENT", map[string]any{"strongestSkill": "Go"}},
		{"WORK_EXPERIENCE", map[string]any{"hasExperience": false}},
		{"JOB_READINESS", map[string]any{"resumeConfidence": "low"}},
		{"PERSONAL_CONSTRAINTS", map[string]any{"dailyTimeAvailable": "2 hours"}},
	}
	for _, section := range sections {
		resp = doJSON(t, app, http.MethodPost, base+"/sections", map[string]any{
			"sectionName": section.name,
			"data":        section.payload,
			"advance":     true,
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("save section %s status = %d body = %s", section.name, resp.Code, resp.Body.String())
		}
	}

	resp = doJSON(t, app, http.MethodGet, base, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get session status = %d", resp.Code)
	}
	var session struct {
		CurrentPhase  string `json:"currentPhase"`
		SessionStatus string `json:"sessionStatus"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.CurrentPhase != "AI_ANALYSIS" || session.SessionStatus != "AWAITING_AI" {
		t.Fatalf("session = %+v", session)
	}

	// No real generation client is configured, so the fallback list fails
	// entirely and the session stays retryable.
	resp = doJSON(t, app, http.MethodPost, base+"/analysis", nil)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("analysis status = %d body = %s", resp.Code, resp.Body.String())
	}
	resp = doJSON(t, app, http.MethodGet, base, nil)
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session after failed analysis: %v", err)
	}
	if session.CurrentPhase != "AI_ANALYSIS" {
		t.Fatalf("failed analysis must not advance the phase, got %s", session.CurrentPhase)
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/counselling/sessions/no-such-id", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "not_found" {
		t.Fatalf("code = %s", envelope.Error.Code)
	}
}

func TestGuestsAreIsolated(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/counselling/sessions", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("start status = %d", resp.Code)
	}
	var started struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode start: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/counselling/sessions/%s", started.SessionID), nil)
	req.Header.Set("X-Guest-Id", "guest2")
	other := httptest.NewRecorder()
	app.Router.ServeHTTP(other, req)

	if other.Code != http.StatusNotFound {
		t.Fatalf("foreign guest status = %d", other.Code)
	}
}
