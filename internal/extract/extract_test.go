// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeTier is a scripted tier for exercising the chain without PDFs.
type fakeTier struct {
	name      Method
	available bool
	result    *Result
	err       error
	calls     int
}

func (f *fakeTier) Name() Method    { return f.name }
func (f *fakeTier) Available() bool { return f.available }
func (f *fakeTier) Extract(_ context.Context, _ string) (*Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// Copy so the chain can append warnings without mutating the script.
	r := *f.result
	r.Warnings = append([]string(nil), f.result.Warnings...)
	return &r, nil
}

func viableResult(method Method, pages int) *Result {
	return &Result{
		Text:      strings.Repeat("policy text ", 20*pages),
		Method:    method,
		PageCount: pages,
	}
}

func TestExtract_FirstViableTierWins(t *testing.T) {
	direct := &fakeTier{name: MethodDirect, available: true, result: viableResult(MethodDirect, 2)}
	ocr := &fakeTier{name: MethodOCRTool, available: true, result: viableResult(MethodOCRTool, 2)}
	chain := NewChain(25, direct, ocr)

	res, err := chain.Extract(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.Method != MethodDirect {
		t.Errorf("Expected direct method, got %s", res.Method)
	}
	if ocr.calls != 0 {
		t.Errorf("OCR tier should not run when direct is viable, got %d calls", ocr.calls)
	}
}

func TestExtract_EmptyTextLayerFallsThrough(t *testing.T) {
	// A scanned PDF: the direct tier errors out (no text layer at all)
	// and the integrated OCR tier produces viable text.
	direct := &fakeTier{name: MethodDirect, available: true, err: errors.New("no text layer")}
	ocr := &fakeTier{
		name: MethodOCRTool, available: true,
		result: &Result{
			Text:      strings.Repeat("recognized text ", 10),
			Method:    MethodOCRTool,
			PageCount: 2,
			Warnings:  []string{"no usable text layer, OCR applied"},
		},
	}
	chain := NewChain(25, direct, ocr)

	res, err := chain.Extract(context.Background(), "scan.pdf")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.Method == MethodDirect {
		t.Fatalf("Scanned PDF must never yield a direct result")
	}
	if len(res.Warnings) == 0 {
		t.Errorf("Expected a degraded-extraction warning, got none")
	}
}

func TestExtract_BelowThresholdKeepsBestResult(t *testing.T) {
	// Every tier runs but all fall below the threshold; the longest
	// output wins and a warning is appended.
	direct := &fakeTier{
		name: MethodDirect, available: true,
		result: &Result{Text: "x", Method: MethodDirect, PageCount: 4},
	}
	manual := &fakeTier{
		name: MethodOCRManual, available: true,
		result: &Result{Text: "barely readable scan", Method: MethodOCRManual, PageCount: 4},
	}
	chain := NewChain(25, direct, manual)

	res, err := chain.Extract(context.Background(), "bad-scan.pdf")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.Method != MethodOCRManual {
		t.Errorf("Expected best (longest) result, got %s", res.Method)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "low text density") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected low text density warning, got %v", res.Warnings)
	}
}

func TestExtract_UnavailableTiersSkipped(t *testing.T) {
	skipped := &fakeTier{name: MethodOCRTool, available: false, result: viableResult(MethodOCRTool, 1)}
	manual := &fakeTier{name: MethodOCRManual, available: true, result: viableResult(MethodOCRManual, 1)}
	chain := NewChain(25, skipped, manual)

	res, err := chain.Extract(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if skipped.calls != 0 {
		t.Errorf("Unavailable tier must not be invoked")
	}
	if res.Method != MethodOCRManual {
		t.Errorf("Expected ocr_manual, got %s", res.Method)
	}
}

func TestExtract_NothingRunnable(t *testing.T) {
	unavailable := &fakeTier{name: MethodOCRTool, available: false}
	failing := &fakeTier{name: MethodDirect, available: true, err: errors.New("corrupt file")}
	chain := NewChain(25, failing, unavailable)

	_, err := chain.Extract(context.Background(), "doc.pdf")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}

func TestViableThreshold(t *testing.T) {
	chain := NewChain(25)

	short := &Result{Text: strings.Repeat("a", 49), PageCount: 2}
	if chain.viable(short) {
		t.Errorf("49 chars over 2 pages should be below a 25 chars/page threshold")
	}
	enough := &Result{Text: strings.Repeat("a", 50), PageCount: 2}
	if !chain.viable(enough) {
		t.Errorf("50 chars over 2 pages should clear a 25 chars/page threshold")
	}

	// Whitespace must not count toward viability.
	padded := &Result{Text: strings.Repeat(" \n\f", 100) + "abc", PageCount: 1}
	if chain.viable(padded) {
		t.Errorf("Whitespace-padded text should not clear the threshold")
	}
}
