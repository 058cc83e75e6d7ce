// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extract

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// ocrManualTier is the last-resort chain: rasterize each page with go-fitz,
// OCR each image with tesseract (gosseract), concatenate in page order.
type ocrManualTier struct {
	dpi      int
	language string
}

func newOCRManualTier(dpi int, language string) *ocrManualTier {
	if dpi <= 0 {
		dpi = 300
	}
	if language == "" {
		language = "eng"
	}
	return &ocrManualTier{dpi: dpi, language: language}
}

func (t *ocrManualTier) Name() Method { return MethodOCRManual }

// Available is always true; a missing tesseract installation surfaces as an
// extraction error and the chain moves on.
func (t *ocrManualTier) Available() bool { return true }

func (t *ocrManualTier) Extract(ctx context.Context, pdfPath string) (*Result, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		png, err := doc.ImagePNG(i, float64(t.dpi))
		if err != nil {
			return nil, fmt.Errorf("failed to rasterize page %d: %w", i+1, err)
		}
		if err := client.SetImageFromBytes(png); err != nil {
			return nil, fmt.Errorf("failed to load page %d image: %w", i+1, err)
		}
		pageText, err := client.Text()
		if err != nil {
			return nil, fmt.Errorf("OCR failed on page %d: %w", i+1, err)
		}
		pages = append(pages, pageText)
	}

	return &Result{
		Text:      pageJoin(pages),
		Method:    MethodOCRManual,
		PageCount: numPages,
		Warnings:  []string{"no usable text layer, per-page OCR applied"},
	}, nil
}
