// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extract

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// directTier reads the embedded text layer via go-fitz (MuPDF).
type directTier struct{}

func (directTier) Name() Method    { return MethodDirect }
func (directTier) Available() bool { return true }

func (directTier) Extract(_ context.Context, pdfPath string) (*Result, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	for i := 0; i < numPages; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			// Keep going; a single bad page should not sink the tier.
			continue
		}
		pages = append(pages, pageText)
	}

	text := pageJoin(pages)
	if text == "" {
		return nil, fmt.Errorf("no text layer in %s", pdfPath)
	}

	return &Result{Text: text, Method: MethodDirect, PageCount: numPages}, nil
}

// CountPages returns the page count of a PDF without extracting text.
func CountPages(pdfPath string) (int, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}
