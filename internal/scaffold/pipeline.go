// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package scaffold

import (
	"context"
	"fmt"
	"os"

	"github.com/sopforge/internal/generate"
	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/module"
	"github.com/sopforge/internal/segment"
	"github.com/sopforge/internal/state"
	"github.com/sopforge/internal/worker"
)

// ExtractModule runs the extraction stage for one module: tiered text
// extraction, segmentation, and the raw/sections/meta artifacts. Unchanged
// PDFs are skipped unless force is set. Writes are atomic, so a failure
// leaves prior artifacts valid.
func (s *Scaffolder) ExtractModule(ctx context.Context, m *module.Module, force bool) error {
	decision, err := state.Decide(s.states, m.Slug, m.PDFPath(), force)
	if err != nil {
		return err
	}
	if !decision.ShouldProcess {
		logger.Printf("extract: skipping %s: %s", m.Slug, decision.Reason)
		return nil
	}

	res, err := s.extractor.Extract(ctx, m.PDFPath())
	if err != nil {
		return fmt.Errorf("extraction failed for %s: %w", m.Slug, err)
	}
	for _, w := range res.Warnings {
		logger.Warnf("extract: %s: %s", m.Slug, w)
	}

	sections := s.segmenter.Segment(res.Text)

	if err := module.WriteFileAtomic(m.RawTextPath(), []byte(res.Text)); err != nil {
		return err
	}
	if err := module.WriteJSON(m.SectionsPath(), sections); err != nil {
		return err
	}
	meta := module.BuildMeta(m, "", s.norm.Title(m.Slug), res)
	if err := module.WriteJSON(m.MetaPath(), meta); err != nil {
		return err
	}

	if s.states != nil {
		if err := s.states.MarkExtracted(m.Slug, decision.PDFHash, string(res.Method)); err != nil {
			logger.Warnf("extract: failed to record state for %s: %v", m.Slug, err)
		}
	}

	logger.Printf("extract: %s: %d sections, %d pages via %s", m.Slug, len(sections), res.PageCount, res.Method)
	return nil
}

// ExtractAll runs extraction for every module over the worker pool and
// returns per-module failures.
func (s *Scaffolder) ExtractAll(ctx context.Context, force bool) []worker.ModuleError {
	modules, err := module.List(s.root)
	if err != nil {
		return []worker.ModuleError{{Slug: s.root, Err: err}}
	}
	if len(modules) == 0 {
		logger.Printf("extract: no modules found")
		return nil
	}
	return worker.RunPool(ctx, modules, s.cfg.WorkerCount, func(ctx context.Context, m *module.Module) error {
		return s.ExtractModule(ctx, m, force)
	})
}

// GenerateModule produces learning content for one module from its
// extracted sections. In offline mode only the prompt files are written.
// The automated path validates before writing: a malformed service response
// leaves data/ untouched.
func (s *Scaffolder) GenerateModule(ctx context.Context, m *module.Module, src generate.Source, offline bool, limits generate.Limits) error {
	var sections []segment.Section
	if err := module.ReadJSON(m.SectionsPath(), &sections); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no extracted sections for %s, run extraction first", m.Slug)
		}
		return err
	}
	if len(sections) == 0 {
		logger.Warnf("generate: skipping %s: no sections", m.Slug)
		return nil
	}

	title := s.norm.Title(m.Slug)

	if offline {
		return generate.WritePrompts(m, title, sections, limits, s.cfg.Generate.PromptBudget)
	}

	content, err := src.Generate(ctx, title, sections, limits)
	if err != nil {
		return fmt.Errorf("generation failed for %s: %w", m.Slug, err)
	}
	if err := generate.WriteContent(m, content); err != nil {
		return err
	}

	logger.Printf("generate: %s: %d questions, %d terms, %d scenarios",
		m.Slug, len(content.Questions), len(content.Terms), len(content.Scenarios))
	return nil
}

// GenerateAll runs generation for every module over the worker pool.
func (s *Scaffolder) GenerateAll(ctx context.Context, src generate.Source, offline bool, limits generate.Limits) []worker.ModuleError {
	modules, err := module.List(s.root)
	if err != nil {
		return []worker.ModuleError{{Slug: s.root, Err: err}}
	}
	return worker.RunPool(ctx, modules, s.cfg.WorkerCount, func(ctx context.Context, m *module.Module) error {
		return s.GenerateModule(ctx, m, src, offline, limits)
	})
}

// Ingest is the watcher entry point: place a dropped PDF and extract it.
func (s *Scaffolder) Ingest(ctx context.Context, pdfPath string) error {
	if err := s.Place(pdfPath); err != nil {
		return err
	}

	sl, err := s.norm.FromFilename(pdfPath)
	if err != nil {
		return err
	}
	m, err := module.Find(s.root, sl)
	if err != nil {
		return err
	}
	if err := s.ExtractModule(ctx, m, false); err != nil {
		return err
	}

	modules, err := module.List(s.root)
	if err != nil {
		return err
	}
	if err := s.ensureIndex(m, false); err != nil {
		return err
	}
	return s.RebuildListing(modules)
}
