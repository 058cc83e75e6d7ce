// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sopforge/internal/segment"
)

// Source produces the learning-content collections for a module. The
// offline prompt export and the OpenAI-backed client share one prompt
// builder so both paths land in the same file shape.
type Source interface {
	Generate(ctx context.Context, title string, sections []segment.Section, limits Limits) (*Content, error)
}

// OpenAIClient generates learning content through the OpenAI chat API.
type OpenAIClient struct {
	apiKey       string
	model        string
	baseURL      string
	promptBudget int
	httpClient   *http.Client
}

// NewOpenAIClient creates a client using OPENAI_API_KEY from the
// environment. The missing-credential check happens at Generate time so
// offline-only invocations never require a key.
func NewOpenAIClient(model string, promptBudget int) *OpenAIClient {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{
		apiKey:       os.Getenv("OPENAI_API_KEY"),
		model:        model,
		baseURL:      "https://api.openai.com/v1",
		promptBudget: promptBudget,
		httpClient:   &http.Client{Timeout: 90 * time.Second},
	}
}

// Generate runs one chat completion per collection, validates each response
// against its schema, and truncates to the limits. Any failure aborts the
// whole generation so no partial content reaches disk.
func (c *OpenAIClient) Generate(ctx context.Context, title string, sections []segment.Section, limits Limits) (*Content, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrUnavailable)
	}

	prompts := BuildPrompts(title, Outline(sections, c.promptBudget), limits)

	content := &Content{}
	for _, kind := range Kinds {
		raw, err := c.complete(ctx, prompts[kind])
		if err != nil {
			return nil, fmt.Errorf("%s generation failed: %w", kind, err)
		}
		if err := decodeKind(kind, raw, content); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
	}

	content.Truncate(limits)
	return content, nil
}

// complete performs one chat-completions request.
func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a precise educational content generator. Output only JSON.",
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": 0.3,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API error: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return result.Choices[0].Message.Content, nil
}

// decodeKind validates one raw response and folds it into content.
func decodeKind(kind, raw string, content *Content) error {
	data := []byte(extractJSON(raw))
	if err := ValidateShape(kind, data); err != nil {
		return err
	}

	switch kind {
	case "terms":
		var f TermsFile
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		content.Terms = f.Terms
	case "questions":
		var f QuestionsFile
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		content.Questions = f.Questions
	case "scenarios":
		var f ScenariosFile
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		content.Scenarios = f.Scenarios
	default:
		return fmt.Errorf("unknown content kind: %s", kind)
	}
	return nil
}

// extractJSON strips markdown fences and leading/trailing prose some models
// wrap around their JSON.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}
