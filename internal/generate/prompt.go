// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package generate

import (
	"fmt"
	"strings"

	"github.com/sopforge/internal/segment"
)

// Kinds is the fixed set of learning-content collections, in the order they
// are generated and written.
var Kinds = []string{"questions", "terms", "scenarios"}

// Outline flattens sections into a readable heading/paragraph outline,
// clamped to budget characters so a long SOP does not blow the prompt.
// Each section contributes at most 20 paragraphs.
func Outline(sections []segment.Section, budget int) string {
	var b strings.Builder
	for _, s := range sections {
		heading := s.Heading
		if heading == "" {
			heading = "Section"
		}
		b.WriteString("\n# " + heading + "\n")
		paragraphs := s.Paragraphs
		if len(paragraphs) > 20 {
			paragraphs = paragraphs[:20]
		}
		for _, p := range paragraphs {
			b.WriteString(strings.TrimSpace(p))
			b.WriteString("\n")
		}
	}
	text := strings.TrimSpace(b.String())
	if budget > 0 && len(text) > budget {
		text = text[:budget] + "\n\n[TRUNCATED]"
	}
	return text
}

// BuildPrompts renders the three instruction documents, one per collection.
// The same prompts drive both the offline export and the service call so a
// hand-pasted result lands in the same shape the pipeline writes itself.
func BuildPrompts(title, outline string, limits Limits) map[string]string {
	base := fmt.Sprintf(`You are helping create a training module for staff. Source content below came from the
policy PDF called %q. Generate outputs strictly as compact JSON only. Keep content
faithful to the source; do not invent details.

SOURCE CONTENT (outline; may be truncated):
%s`, title, outline)

	questions := fmt.Sprintf(`%s

TASK: Create multiple-choice questions JSON with the following shape:
{
  "questions": [
    {
      "id": "q_001",
      "category": "string",
      "text": "Question?",
      "options": {"A":"...","B":"...","C":"...","D":"..."},
      "correct": "A|B|C|D",
      "explanation": "One-sentence justification based on the source",
      "difficulty": "Easy|Medium|Hard"
    }
  ]
}
RULES:
- Create up to %d questions.
- Prefer concrete, policy-accurate content.
- Keep choices concise and non-overlapping.
- Output JSON only. No trailing commentary.`, base, limits.MaxQuestions)

	terms := fmt.Sprintf(`%s

TASK: Extract key terms and definitions JSON:
{
  "terms": [
    {"term":"...","definition":"...","category":"string"}
  ]
}
RULES:
- Create up to %d terms.
- Definitions must be derived from the source wording when possible.
- Category should be a nearby or parent section heading.
- Output JSON only. No extra text.`, base, limits.MaxTerms)

	scenarios := fmt.Sprintf(`%s

TASK: Create scenario-based questions JSON:
{
  "scenarios": [
    {
      "id":"s_001",
      "title":"Short scenario title",
      "description":"1-2 sentence realistic situation",
      "question":"What should staff do?",
      "options":{"A":"...","B":"...","C":"...","D":"..."},
      "correct":"A|B|C|D",
      "explanation":"One-sentence justification from source",
      "relatedConcepts":["..."],
      "difficulty":"easy|medium|hard"
    }
  ]
}
RULES:
- Create up to %d scenarios.
- Situations should match the spirit and constraints of the source.
- Output JSON only. No extra commentary.`, base, limits.MaxScenarios)

	return map[string]string{
		"questions": questions,
		"terms":     terms,
		"scenarios": scenarios,
	}
}
