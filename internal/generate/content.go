// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package generate

import (
	"errors"
)

// ErrUnavailable is returned when no generation credential is configured.
var ErrUnavailable = errors.New("no generation credential configured")

// ErrMalformed is returned when a service response cannot be parsed into
// the expected learning-content shape.
var ErrMalformed = errors.New("malformed generation response")

// Term is one flashcard entry.
type Term struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Category   string `json:"category,omitempty"`
}

// Question is one multiple-choice quiz question.
type Question struct {
	ID          string            `json:"id,omitempty"`
	Category    string            `json:"category,omitempty"`
	Text        string            `json:"text"`
	Options     map[string]string `json:"options"`
	Correct     string            `json:"correct"`
	Explanation string            `json:"explanation,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
}

// Scenario is one situational exercise.
type Scenario struct {
	ID              string            `json:"id,omitempty"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Question        string            `json:"question,omitempty"`
	Options         map[string]string `json:"options"`
	Correct         string            `json:"correct"`
	Explanation     string            `json:"explanation,omitempty"`
	RelatedConcepts []string          `json:"relatedConcepts,omitempty"`
	Difficulty      string            `json:"difficulty,omitempty"`
}

// TermsFile is the on-disk shape of data/terms.json.
type TermsFile struct {
	Terms []Term `json:"terms"`
}

// QuestionsFile is the on-disk shape of data/questions.json.
type QuestionsFile struct {
	Questions []Question `json:"questions"`
}

// ScenariosFile is the on-disk shape of data/scenarios.json.
type ScenariosFile struct {
	Scenarios []Scenario `json:"scenarios"`
}

// Content bundles the three independent learning-content collections.
type Content struct {
	Terms     []Term
	Questions []Question
	Scenarios []Scenario
}

// Limits caps the size of each generated collection.
type Limits struct {
	MaxQuestions int
	MaxTerms     int
	MaxScenarios int
}

// Truncate enforces the limits by cutting collections, never by retrying.
func (c *Content) Truncate(l Limits) {
	if l.MaxTerms > 0 && len(c.Terms) > l.MaxTerms {
		c.Terms = c.Terms[:l.MaxTerms]
	}
	if l.MaxQuestions > 0 && len(c.Questions) > l.MaxQuestions {
		c.Questions = c.Questions[:l.MaxQuestions]
	}
	if l.MaxScenarios > 0 && len(c.Scenarios) > l.MaxScenarios {
		c.Scenarios = c.Scenarios[:l.MaxScenarios]
	}
}
