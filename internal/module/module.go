// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Module is one ingested SOP: a slug-named directory owning the source PDF
// and its derived artifacts.
//
// Layout:
//
//	<slug>/<slug>.pdf
//	<slug>/content/raw.txt
//	<slug>/content/sections.json
//	<slug>/content/meta.json
//	<slug>/data/{terms,questions,scenarios}.json
//	<slug>/prompts/{terms,questions,scenarios}.txt   (offline generation)
type Module struct {
	Slug string
	Dir  string
}

// New returns the module rooted at <root>/<slug>.
func New(root, slug string) *Module {
	return &Module{Slug: slug, Dir: filepath.Join(root, slug)}
}

// PDFPath is the canonical location of the source document.
func (m *Module) PDFPath() string { return filepath.Join(m.Dir, m.Slug+".pdf") }

func (m *Module) ContentDir() string { return filepath.Join(m.Dir, "content") }
func (m *Module) DataDir() string    { return filepath.Join(m.Dir, "data") }
func (m *Module) PromptsDir() string { return filepath.Join(m.Dir, "prompts") }

func (m *Module) RawTextPath() string   { return filepath.Join(m.ContentDir(), "raw.txt") }
func (m *Module) SectionsPath() string  { return filepath.Join(m.ContentDir(), "sections.json") }
func (m *Module) MetaPath() string      { return filepath.Join(m.ContentDir(), "meta.json") }
func (m *Module) TermsPath() string     { return filepath.Join(m.DataDir(), "terms.json") }
func (m *Module) QuestionsPath() string { return filepath.Join(m.DataDir(), "questions.json") }
func (m *Module) ScenariosPath() string { return filepath.Join(m.DataDir(), "scenarios.json") }

// HasPDF reports whether the source document is in place.
func (m *Module) HasPDF() bool {
	_, err := os.Stat(m.PDFPath())
	return err == nil
}

// Populated reports whether the module has generated quiz content; the
// landing page uses this to mark a module as live.
func (m *Module) Populated() bool {
	_, err := os.Stat(m.QuestionsPath())
	return err == nil
}

// IsModuleDir reports whether dir is a module directory: a non-hidden
// directory containing <name>/<name>.pdf.
func IsModuleDir(dir string) bool {
	name := filepath.Base(dir)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, name+".pdf"))
	return err == nil
}

// List returns all modules under root, sorted by slug.
func List(root string) ([]*Module, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read module root: %w", err)
	}

	var modules []*Module
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if IsModuleDir(dir) {
			modules = append(modules, &Module{Slug: entry.Name(), Dir: dir})
		}
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Slug < modules[j].Slug })
	return modules, nil
}

// Find returns the module for slug, or an error if it is not scaffolded.
func Find(root, slug string) (*Module, error) {
	m := New(root, slug)
	if !IsModuleDir(m.Dir) {
		return nil, fmt.Errorf("not a module or missing PDF: %s", slug)
	}
	return m, nil
}
