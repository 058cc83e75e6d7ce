// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package slug

import (
	"errors"
	"testing"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(
		map[string]string{"coporate": "corporate", "fince": "finance"},
		[]string{"HIPAA", "HMIS", "PSH", "HUD"},
	)
}

func TestNormalize_Basic(t *testing.T) {
	n := testNormalizer()

	got, err := n.Normalize("Access to Housing")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got != "access-to-housing" {
		t.Errorf("Expected access-to-housing, got %q", got)
	}
}

func TestNormalize_SymbolWords(t *testing.T) {
	n := testNormalizer()

	got, err := n.Normalize("Honoring Client Voice & Choice")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got != "honoring-client-voice-and-choice" {
		t.Errorf("Expected honoring-client-voice-and-choice, got %q", got)
	}
}

func TestNormalize_CorrectionTable(t *testing.T) {
	n := testNormalizer()

	got, err := n.Normalize("Coporate Fince Policy")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got != "corporate-finance-policy" {
		t.Errorf("Expected corporate-finance-policy, got %q", got)
	}
}

func TestNormalize_CorrectionWholeTokensOnly(t *testing.T) {
	n := testNormalizer()

	// "fincer" contains a misspelling key but is not that token.
	got, err := n.Normalize("Fincer Report")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got != "fincer-report" {
		t.Errorf("Expected fincer-report, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := testNormalizer()

	inputs := []string{
		"Honoring Client Voice & Choice",
		"Coporate Fince Policy",
		"  HIPAA -- Privacy @ Work  ",
		"already-a-slug",
	}
	for _, in := range inputs {
		first, err := n.Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q) failed: %v", in, err)
		}
		second, err := n.Normalize(first)
		if err != nil {
			t.Fatalf("Normalize(%q) failed: %v", first, err)
		}
		if first != second {
			t.Errorf("Not idempotent for %q: %q != %q", in, first, second)
		}
	}
}

func TestNormalize_InvalidTitle(t *testing.T) {
	n := testNormalizer()

	for _, in := range []string{"", "   ", "---", "!!!"} {
		if _, err := n.Normalize(in); !errors.Is(err, ErrInvalidTitle) {
			t.Errorf("Normalize(%q): expected ErrInvalidTitle, got %v", in, err)
		}
	}
}

func TestFromFilename(t *testing.T) {
	n := testNormalizer()

	got, err := n.FromFilename("/drop/Honoring Client Voice & Choice.pdf")
	if err != nil {
		t.Fatalf("FromFilename failed: %v", err)
	}
	if got != "honoring-client-voice-and-choice" {
		t.Errorf("Expected honoring-client-voice-and-choice, got %q", got)
	}
}

func TestTitle(t *testing.T) {
	n := testNormalizer()

	cases := map[string]string{
		"access-to-housing":               "Access to Housing",
		"hipaa-privacy":                   "HIPAA Privacy",
		"fy2024-budget-guidance":          "FY2024 Budget Guidance",
		"honoring-client-voice-and-choice": "Honoring Client Voice and Choice",
	}
	for in, want := range cases {
		if got := n.Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}
