// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sopforge/internal/config"
	"github.com/sopforge/internal/extract"
	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/module"
	"github.com/sopforge/internal/segment"
	"github.com/sopforge/internal/slug"
	"github.com/sopforge/internal/state"
	"github.com/sopforge/internal/worker"
)

// ErrSlugCollision is returned when a dropped PDF maps to a slug whose
// module directory already holds a different source document. The pipeline
// never silently merges; resolution is manual.
var ErrSlugCollision = errors.New("slug collision with existing module")

// Scaffolder drives the ingestion pipeline: it maintains the on-disk module
// layout, runs extraction and generation, and rebuilds the landing listing.
type Scaffolder struct {
	root      string
	cfg       *config.Config
	norm      *slug.Normalizer
	extractor *extract.Extractor
	segmenter *segment.Segmenter
	states    *state.DB
}

// New creates a scaffolder rooted at the module root. The extraction-state
// ledger is optional: if it cannot be opened the pipeline still runs, it
// just re-extracts every time.
func New(root string, cfg *config.Config) *Scaffolder {
	s := &Scaffolder{
		root: root,
		cfg:  cfg,
		norm: slug.NewNormalizer(cfg.Corrections, cfg.Acronyms),
		extractor: extract.NewExtractor(
			cfg.Extract.MinCharsPerPage, cfg.Extract.OCRDPI, cfg.Extract.OCRLanguage),
		segmenter: segment.NewSegmenter(
			cfg.Segment.HeadingVocabulary, cfg.Acronyms,
			cfg.Segment.HeadingMaxLen, cfg.Segment.HeadingMaxWords),
	}

	states, err := state.Open(filepath.Join(root, cfg.StateDB))
	if err != nil {
		logger.Warnf("scaffold: state ledger unavailable, re-extracting every run: %v", err)
	} else {
		s.states = states
	}
	return s
}

// Close releases the state ledger.
func (s *Scaffolder) Close() {
	if s.states != nil {
		s.states.Close()
	}
}

// Normalizer exposes the slug normalizer for callers that need titles.
func (s *Scaffolder) Normalizer() *slug.Normalizer { return s.norm }

// Root returns the module root directory.
func (s *Scaffolder) Root() string { return s.root }

// Sync moves root-level PDFs into slug-named module directories, ensures
// each module has an index page, and rebuilds the landing listing as one
// atomic write. Safe to re-run; returns per-item failures.
func (s *Scaffolder) Sync(stampIndex bool) []worker.ModuleError {
	var failures []worker.ModuleError

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return []worker.ModuleError{{Slug: s.root, Err: fmt.Errorf("failed to read module root: %w", err)}}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.Place(filepath.Join(s.root, name)); err != nil {
			logger.Errorf("sync: %s: %v", name, err)
			failures = append(failures, worker.ModuleError{Slug: name, Err: err})
		}
	}

	modules, err := module.List(s.root)
	if err != nil {
		failures = append(failures, worker.ModuleError{Slug: s.root, Err: err})
		return failures
	}

	for _, m := range modules {
		if err := s.ensureIndex(m, stampIndex); err != nil {
			failures = append(failures, worker.ModuleError{Slug: m.Slug, Err: err})
		}
	}

	if err := s.RebuildListing(modules); err != nil {
		failures = append(failures, worker.ModuleError{Slug: "index.html", Err: err})
	}
	return failures
}

// Place moves one source PDF into its module directory at
// <slug>/<slug>.pdf. Re-placing a byte-identical PDF removes the duplicate;
// differing content under the same slug is a collision.
func (s *Scaffolder) Place(pdfPath string) error {
	sl, err := s.norm.FromFilename(pdfPath)
	if err != nil {
		return err
	}

	m := module.New(s.root, sl)
	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create module directory: %w", err)
	}

	target := m.PDFPath()
	if _, err := os.Stat(target); os.IsNotExist(err) {
		if err := os.Rename(pdfPath, target); err != nil {
			return fmt.Errorf("failed to move PDF into place: %w", err)
		}
		logger.Printf("sync: placed %s -> %s", filepath.Base(pdfPath), target)
		return nil
	}

	existingHash, err := state.HashFile(target)
	if err != nil {
		return fmt.Errorf("failed to hash existing PDF: %w", err)
	}
	incomingHash, err := state.HashFile(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to hash incoming PDF: %w", err)
	}

	if existingHash == incomingHash {
		// Same document dropped twice; drop the duplicate.
		if err := os.Remove(pdfPath); err != nil {
			return fmt.Errorf("failed to remove duplicate PDF: %w", err)
		}
		logger.Printf("sync: %s already placed, removed duplicate", sl)
		return nil
	}

	return fmt.Errorf("%w: %s already owns a different document (incoming %s)",
		ErrSlugCollision, sl, filepath.Base(pdfPath))
}
