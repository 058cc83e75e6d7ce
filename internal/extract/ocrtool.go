// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ocrToolTier shells out to ocrmypdf, which rasterizes and OCRs the whole
// document in one step and writes the recognized text to a sidecar file.
type ocrToolTier struct {
	binary string
}

func newOCRToolTier() *ocrToolTier {
	return &ocrToolTier{binary: "ocrmypdf"}
}

func (t *ocrToolTier) Name() Method { return MethodOCRTool }

func (t *ocrToolTier) Available() bool {
	_, err := exec.LookPath(t.binary)
	return err == nil
}

func (t *ocrToolTier) Extract(ctx context.Context, pdfPath string) (*Result, error) {
	tmpDir, err := os.MkdirTemp("", "sopforge-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	sidecar := filepath.Join(tmpDir, "sidecar.txt")
	outPDF := filepath.Join(tmpDir, "out.pdf")

	// --force-ocr rasterizes even pages that claim a text layer, which is
	// what we want: this tier only runs when the text layer is unusable.
	cmd := exec.CommandContext(ctx, t.binary,
		"--force-ocr",
		"--output-type", "pdf",
		"--sidecar", sidecar,
		pdfPath, outPDF,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ocrmypdf failed: %w: %s", err, string(out))
	}

	text, err := os.ReadFile(sidecar)
	if err != nil {
		return nil, fmt.Errorf("failed to read ocrmypdf sidecar: %w", err)
	}

	pageCount, err := CountPages(pdfPath)
	if err != nil {
		pageCount = 0
	}

	return &Result{
		Text:      string(text),
		Method:    MethodOCRTool,
		PageCount: pageCount,
		Warnings:  []string{"no usable text layer, OCR applied"},
	}, nil
}
