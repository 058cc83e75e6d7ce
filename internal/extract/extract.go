// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sopforge/internal/logger"
)

// Method identifies which extraction tier produced a result.
type Method string

const (
	MethodDirect    Method = "direct"
	MethodOCRTool   Method = "ocr_tool"
	MethodOCRManual Method = "ocr_manual"
)

// ErrUnavailable is returned when no extraction tier could run at all.
var ErrUnavailable = errors.New("no extraction tier available")

// Result is the outcome of extracting a PDF's text.
type Result struct {
	Text      string
	Method    Method
	PageCount int
	// Warnings records degraded-quality signals; they travel into the
	// module metadata rather than failing the pipeline.
	Warnings []string
}

// Tier is one strategy in the extraction fallback chain.
type Tier interface {
	// Name identifies the tier in results and logs.
	Name() Method
	// Available reports whether the tier can run on this host.
	Available() bool
	// Extract attempts extraction. An error means the tier could not
	// produce any output; quality is judged by the chain, not the tier.
	Extract(ctx context.Context, pdfPath string) (*Result, error)
}

// Extractor runs an ordered chain of tiers until one clears the
// minimum-viable-text threshold, keeping the best degraded result as a
// fallback so a poor scan still yields text instead of an error.
type Extractor struct {
	tiers           []Tier
	minCharsPerPage int
}

// NewExtractor creates the standard chain: embedded text layer, integrated
// OCR (ocrmypdf), then per-page rasterize-and-OCR (tesseract).
func NewExtractor(minCharsPerPage, ocrDPI int, ocrLanguage string) *Extractor {
	return NewChain(minCharsPerPage,
		&directTier{},
		newOCRToolTier(),
		newOCRManualTier(ocrDPI, ocrLanguage),
	)
}

// NewChain creates an extractor over an explicit tier ordering.
func NewChain(minCharsPerPage int, tiers ...Tier) *Extractor {
	if minCharsPerPage <= 0 {
		minCharsPerPage = 25
	}
	return &Extractor{tiers: tiers, minCharsPerPage: minCharsPerPage}
}

// Extract runs the chain in order. The first result clearing the threshold
// wins; if every runnable tier falls short, the longest result is returned
// with a degraded-extraction warning. ErrUnavailable only when nothing ran.
func (e *Extractor) Extract(ctx context.Context, pdfPath string) (*Result, error) {
	var best *Result

	for _, tier := range e.tiers {
		if !tier.Available() {
			logger.Debugf("extract: tier %s unavailable, skipping", tier.Name())
			continue
		}

		res, err := tier.Extract(ctx, pdfPath)
		if err != nil {
			logger.Warnf("extract: tier %s failed for %s: %v", tier.Name(), pdfPath, err)
			continue
		}

		if e.viable(res) {
			logger.Printf("extract: %s extracted %d pages via %s", pdfPath, res.PageCount, res.Method)
			return res, nil
		}

		logger.Warnf("extract: tier %s below threshold for %s (%d chars, %d pages)",
			tier.Name(), pdfPath, strippedLen(res.Text), res.PageCount)
		if best == nil || strippedLen(res.Text) > strippedLen(best.Text) {
			best = res
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w for %s", ErrUnavailable, pdfPath)
	}

	best.Warnings = append(best.Warnings,
		fmt.Sprintf("low text density after all tiers; best result from %s", best.Method))
	return best, nil
}

// viable applies the minimum-viable-text threshold: the whitespace-stripped
// character count must average minCharsPerPage per page. This is the proxy
// for "scanned PDF with no real text layer".
func (e *Extractor) viable(res *Result) bool {
	pages := res.PageCount
	if pages < 1 {
		pages = 1
	}
	return strippedLen(res.Text) >= e.minCharsPerPage*pages
}

func strippedLen(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// pageJoin concatenates per-page text in page order with a visible break.
func pageJoin(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, "\n\n"))
}
