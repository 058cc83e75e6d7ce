// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sopforge/internal/module"
	"github.com/sopforge/internal/segment"
)

var testSections = []segment.Section{
	{Heading: "Purpose", Paragraphs: []string{"Staff must respect client autonomy."}},
	{Heading: "Procedures", Paragraphs: []string{"Step one. Step two."}},
}

func optionSet() map[string]string {
	return map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"}
}

func questionsJSON(n int) string {
	var qs []Question
	for i := 0; i < n; i++ {
		qs = append(qs, Question{
			Text:    fmt.Sprintf("Question %d?", i+1),
			Options: optionSet(),
			Correct: "A",
		})
	}
	b, _ := json.Marshal(QuestionsFile{Questions: qs})
	return string(b)
}

// fakeService answers chat-completion calls with canned content per kind,
// inferred from the prompt text.
func fakeService(t *testing.T, questions, terms, scenarios string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		prompt := req.Messages[len(req.Messages)-1].Content

		var content string
		switch {
		case strings.Contains(prompt, "multiple-choice questions JSON"):
			content = questions
		case strings.Contains(prompt, "key terms and definitions JSON"):
			content = terms
		case strings.Contains(prompt, "scenario-based questions JSON"):
			content = scenarios
		default:
			t.Errorf("unrecognized prompt: %.80s", prompt)
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(serverURL string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:       "test-key",
		model:        "gpt-4o-mini",
		baseURL:      serverURL,
		promptBudget: 16000,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGenerate_TruncatesToLimits(t *testing.T) {
	terms, _ := json.Marshal(TermsFile{Terms: []Term{{Term: "Intake", Definition: "First meeting"}}})
	scenarios, _ := json.Marshal(ScenariosFile{Scenarios: []Scenario{{
		Title: "Late arrival", Description: "A client arrives late.",
		Options: optionSet(), Correct: "B",
	}}})

	// Service produces 9 questions; the limit is 5.
	srv := fakeService(t, questionsJSON(9), string(terms), string(scenarios))
	defer srv.Close()

	content, err := testClient(srv.URL).Generate(context.Background(), "Intake Policy", testSections,
		Limits{MaxQuestions: 5, MaxTerms: 24, MaxScenarios: 6})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(content.Questions) != 5 {
		t.Errorf("Expected 5 questions after truncation, got %d", len(content.Questions))
	}
	if len(content.Terms) != 1 || len(content.Scenarios) != 1 {
		t.Errorf("Unexpected collection sizes: %d terms, %d scenarios", len(content.Terms), len(content.Scenarios))
	}
}

func TestGenerate_FencedJSONAccepted(t *testing.T) {
	fenced := "```json\n" + questionsJSON(2) + "\n```"
	terms, _ := json.Marshal(TermsFile{Terms: []Term{{Term: "T", Definition: "D"}}})
	scenarios, _ := json.Marshal(ScenariosFile{Scenarios: []Scenario{{
		Title: "S", Description: "D", Options: optionSet(), Correct: "A",
	}}})

	srv := fakeService(t, fenced, string(terms), string(scenarios))
	defer srv.Close()

	content, err := testClient(srv.URL).Generate(context.Background(), "Policy", testSections,
		Limits{MaxQuestions: 12, MaxTerms: 24, MaxScenarios: 6})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(content.Questions) != 2 {
		t.Errorf("Expected 2 questions, got %d", len(content.Questions))
	}
}

func TestGenerate_MalformedResponse(t *testing.T) {
	srv := fakeService(t, "I'm sorry, I cannot produce JSON today.", "{}", "{}")
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "Policy", testSections,
		Limits{MaxQuestions: 12, MaxTerms: 24, MaxScenarios: 6})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Expected ErrMalformed, got %v", err)
	}
}

func TestGenerate_NoCredential(t *testing.T) {
	c := NewOpenAIClient("gpt-4o-mini", 16000)
	c.apiKey = ""

	_, err := c.Generate(context.Background(), "Policy", testSections, Limits{MaxQuestions: 12})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}

func TestValidateShape(t *testing.T) {
	good := questionsJSON(1)
	if err := ValidateShape("questions", []byte(good)); err != nil {
		t.Errorf("Valid questions rejected: %v", err)
	}

	// Missing top-level key.
	if err := ValidateShape("questions", []byte(`{"items": []}`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for missing key, got %v", err)
	}

	// correct outside A-D.
	bad := `{"questions":[{"text":"Q?","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"E"}]}`
	if err := ValidateShape("questions", []byte(bad)); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for bad correct value, got %v", err)
	}

	// Incomplete options mapping.
	bad = `{"scenarios":[{"title":"T","description":"D","options":{"A":"a"},"correct":"A"}]}`
	if err := ValidateShape("scenarios", []byte(bad)); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for incomplete options, got %v", err)
	}
}

func TestOutline_ClampsToBudget(t *testing.T) {
	long := []segment.Section{{
		Heading:    "Procedures",
		Paragraphs: []string{strings.Repeat("word ", 2000)},
	}}

	out := Outline(long, 500)
	if len(out) > 500+len("\n\n[TRUNCATED]") {
		t.Errorf("Outline not clamped: %d chars", len(out))
	}
	if !strings.HasSuffix(out, "[TRUNCATED]") {
		t.Errorf("Expected truncation marker")
	}
}

func TestWritePrompts(t *testing.T) {
	root := t.TempDir()
	m := module.New(root, "intake-policy")
	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	err := WritePrompts(m, "Intake Policy", testSections, Limits{MaxQuestions: 12, MaxTerms: 24, MaxScenarios: 6}, 16000)
	if err != nil {
		t.Fatalf("WritePrompts failed: %v", err)
	}

	for _, kind := range Kinds {
		data, err := os.ReadFile(filepath.Join(m.PromptsDir(), kind+".txt"))
		if err != nil {
			t.Fatalf("Missing prompt file for %s: %v", kind, err)
		}
		if !strings.Contains(string(data), "Intake Policy") {
			t.Errorf("Prompt for %s missing module title", kind)
		}
	}
}

func TestWriteContent_SkipsEmptyCollections(t *testing.T) {
	root := t.TempDir()
	m := module.New(root, "intake-policy")

	content := &Content{
		Questions: []Question{{Text: "Q?", Options: optionSet(), Correct: "A"}},
	}
	if err := WriteContent(m, content); err != nil {
		t.Fatalf("WriteContent failed: %v", err)
	}

	if !m.Populated() {
		t.Errorf("questions.json should exist")
	}
	if _, err := os.Stat(m.TermsPath()); !os.IsNotExist(err) {
		t.Errorf("terms.json should not exist for empty collection")
	}
}
