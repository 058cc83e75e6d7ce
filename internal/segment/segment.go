// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package segment

import (
	"regexp"
	"strings"
)

// Section is a detected heading plus its paragraphs in reading order.
type Section struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

var (
	numberedMarker = regexp.MustCompile(`^(\d+|[IVXLC]+|[A-Z])([.)])\s+\S`)
	numberedDotted = regexp.MustCompile(`^\d+(?:\.\d+)*\s+\S`)
	lastRevision   = regexp.MustCompile(`(?i)\s*\|\s*Last\s+Revision.*$`)
	fyToken        = regexp.MustCompile(`^FY\d{2,4}$`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Segmenter splits raw extracted text into headed sections using a closed
// structural vocabulary plus generic heading-shape heuristics. It is
// deliberately conservative: an ambiguous line stays in the running
// paragraph rather than fabricating a heading.
type Segmenter struct {
	vocab           map[string]string
	acronyms        map[string]bool
	headingMaxLen   int
	headingMaxWords int
}

// NewSegmenter creates a segmenter. vocabulary lists structural labels
// accepted as headings (matched case-insensitively on whole lines, with an
// optional colon and inline content); acronyms are preserved uppercase when
// headings are normalized.
func NewSegmenter(vocabulary, acronyms []string, headingMaxLen, headingMaxWords int) *Segmenter {
	if headingMaxLen <= 0 {
		headingMaxLen = 90
	}
	if headingMaxWords <= 0 {
		headingMaxWords = 12
	}
	vocab := make(map[string]string, len(vocabulary))
	for _, label := range vocabulary {
		vocab[strings.ToLower(label)] = label
	}
	acr := make(map[string]bool, len(acronyms))
	for _, a := range acronyms {
		acr[strings.ToUpper(a)] = true
	}
	return &Segmenter{
		vocab:           vocab,
		acronyms:        acr,
		headingMaxLen:   headingMaxLen,
		headingMaxWords: headingMaxWords,
	}
}

// Segment splits raw text into sections. Text before the first detected
// heading is collected under an implicit "Overview" section. Paragraphs
// preserve reading order; only whitespace is normalized.
func (s *Segmenter) Segment(raw string) []Section {
	blocks := splitBlocks(raw)

	var sections []Section
	current := Section{}

	flush := func() {
		if current.Heading != "" || len(current.Paragraphs) > 0 {
			if current.Heading == "" {
				current.Heading = "Overview"
			}
			sections = append(sections, current)
		}
		current = Section{}
	}

	for _, block := range blocks {
		first := strings.TrimSpace(block[0])

		if heading, inline, ok := s.matchVocabulary(first); ok {
			flush()
			current.Heading = s.normalizeHeading(heading)
			if inline != "" {
				current.Paragraphs = append(current.Paragraphs, inline)
			}
			if p := joinParagraph(block[1:]); p != "" {
				current.Paragraphs = append(current.Paragraphs, p)
			}
			continue
		}

		if s.isHeadingShape(first) {
			flush()
			current.Heading = s.normalizeHeading(strings.TrimSuffix(first, ":"))
			if p := joinParagraph(block[1:]); p != "" {
				current.Paragraphs = append(current.Paragraphs, p)
			}
			continue
		}

		if p := joinParagraph(block); p != "" {
			current.Paragraphs = append(current.Paragraphs, p)
		}
	}
	flush()

	return dropNavCrumbs(sections)
}

// splitBlocks groups non-blank lines into blocks separated by blank lines.
func splitBlocks(raw string) [][]string {
	var blocks [][]string
	var current []string
	for _, ln := range strings.Split(raw, "\n") {
		if strings.TrimSpace(ln) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, ln)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// joinParagraph re-joins wrapped lines into a single paragraph with
// normalized whitespace.
func joinParagraph(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	joined := strings.Join(lines, " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(joined, " "))
}

// matchVocabulary reports whether line is a structural-vocabulary heading,
// returning the canonical label and any inline content after a colon.
func (s *Segmenter) matchVocabulary(line string) (heading, inline string, ok bool) {
	head := line
	rest := ""
	if idx := strings.Index(line, ":"); idx >= 0 {
		head = strings.TrimSpace(line[:idx])
		rest = strings.TrimSpace(line[idx+1:])
	}
	label, found := s.vocab[strings.ToLower(strings.TrimSpace(head))]
	if !found {
		return "", "", false
	}
	return label, rest, true
}

// isHeadingShape applies generic heading heuristics: short, no terminal
// punctuation, and either numbered, all-caps, or strongly title-cased.
func (s *Segmenter) isHeadingShape(line string) bool {
	if line == "" || len(line) > s.headingMaxLen {
		return false
	}

	// Numbered headings like "1. Scope", "1.2 Duties", "IV) Reporting".
	if numberedMarker.MatchString(line) || numberedDotted.MatchString(line) {
		return true
	}

	// A lone trailing colon still reads as a heading.
	bare := strings.TrimSuffix(line, ":")
	if bare == "" {
		return false
	}
	last := bare[len(bare)-1]
	if last == '.' || last == '!' || last == '?' || last == ';' || last == ',' {
		return false
	}

	// All-caps lines.
	hasLetter := false
	allUpper := true
	for _, r := range bare {
		if r >= 'a' && r <= 'z' {
			allUpper = false
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			hasLetter = true
		}
	}
	if hasLetter && allUpper {
		return true
	}

	// Title case: few words, most starting uppercase.
	words := strings.Fields(bare)
	if len(words) < 2 || len(words) > s.headingMaxWords {
		return false
	}
	caps := 0
	for _, w := range words {
		if w[0] >= 'A' && w[0] <= 'Z' {
			caps++
		}
	}
	min := 2
	if threshold := (len(words)*6 + 9) / 10; threshold > min {
		min = threshold
	}
	return caps >= min
}

// normalizeHeading strips revision metadata and title-cases the heading,
// preserving acronyms and FY#### tokens.
func (s *Segmenter) normalizeHeading(h string) string {
	h = lastRevision.ReplaceAllString(strings.TrimSpace(h), "")
	words := strings.Fields(h)
	for i, w := range words {
		up := strings.ToUpper(w)
		if s.acronyms[up] || fyToken.MatchString(up) {
			words[i] = up
			continue
		}
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

// dropNavCrumbs removes sections whose heading is a navigation crumb left
// behind by site exports ("Previous: ... Next: ...").
func dropNavCrumbs(sections []Section) []Section {
	out := sections[:0]
	for _, sec := range sections {
		if strings.Contains(sec.Heading, "Previous:") && strings.Contains(sec.Heading, "Next:") {
			continue
		}
		out = append(out, sec)
	}
	return out
}
