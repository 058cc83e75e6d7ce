// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package slug

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidTitle is returned when a title normalizes to the empty string.
var ErrInvalidTitle = errors.New("title normalizes to empty slug")

var (
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	fyToken     = regexp.MustCompile(`^FY\d{2,4}$`)
)

// Joiner words kept lowercase in display titles.
var joinerWords = map[string]bool{
	"and": true, "of": true, "the": true, "to": true, "in": true, "at": true,
}

// Normalizer derives canonical module slugs and display titles from
// free-form document titles.
type Normalizer struct {
	corrections map[string]string
	acronyms    map[string]bool
}

// NewNormalizer creates a normalizer with a whole-token correction table and
// a set of acronyms preserved uppercase in display titles.
func NewNormalizer(corrections map[string]string, acronyms []string) *Normalizer {
	corr := make(map[string]string, len(corrections))
	for k, v := range corrections {
		corr[strings.ToLower(k)] = strings.ToLower(v)
	}
	acr := make(map[string]bool, len(acronyms))
	for _, a := range acronyms {
		acr[strings.ToUpper(a)] = true
	}
	return &Normalizer{corrections: corr, acronyms: acr}
}

// Normalize maps a free-form title to its canonical slug: lowercase, symbol
// words spelled out, non-alphanumeric runs collapsed to single hyphens,
// known-misspelled tokens corrected. Normalize is idempotent.
func (n *Normalizer) Normalize(title string) (string, error) {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "+", " and ")
	s = strings.ReplaceAll(s, "@", " at ")

	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}

	tokens := strings.Split(s, "-")
	for i, tok := range tokens {
		if fixed, ok := n.corrections[tok]; ok {
			tokens[i] = fixed
		}
	}
	return strings.Join(tokens, "-"), nil
}

// FromFilename derives a slug from a PDF filename, dropping the extension.
func (n *Normalizer) FromFilename(name string) (string, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return n.Normalize(base)
}

// Title renders a display title from a slug: de-hyphenated, title-cased,
// with acronyms and FY#### tokens uppercased and joiner words lowercase.
func (n *Normalizer) Title(slug string) string {
	words := strings.Split(slug, "-")
	out := make([]string, 0, len(words))
	for i, w := range words {
		if w == "" {
			continue
		}
		up := strings.ToUpper(w)
		switch {
		case n.acronyms[up] || fyToken.MatchString(up):
			out = append(out, up)
		case i > 0 && joinerWords[w]:
			out = append(out, w)
		default:
			out = append(out, strings.ToUpper(w[:1])+w[1:])
		}
	}
	return strings.Join(out, " ")
}
