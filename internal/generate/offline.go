// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package generate

import (
	"fmt"
	"path/filepath"

	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/module"
	"github.com/sopforge/internal/segment"
)

// WritePrompts is the offline path: it writes the three instruction
// documents under <slug>/prompts/ for manual use in an external tool. The
// completed JSON is pasted back into data/ by hand in the same shape the
// automated path writes.
func WritePrompts(m *module.Module, title string, sections []segment.Section, limits Limits, promptBudget int) error {
	prompts := BuildPrompts(title, Outline(sections, promptBudget), limits)

	for _, kind := range Kinds {
		path := filepath.Join(m.PromptsDir(), kind+".txt")
		if err := module.WriteFileAtomic(path, []byte(prompts[kind])); err != nil {
			return fmt.Errorf("failed to write %s prompt: %w", kind, err)
		}
	}

	logger.Printf("generate: wrote offline prompts to %s", m.PromptsDir())
	return nil
}

// WriteContent writes the generated collections to the module's data/
// directory, each file atomically. Empty collections are skipped entirely;
// consumers treat a missing file as "no data".
func WriteContent(m *module.Module, content *Content) error {
	if len(content.Questions) > 0 {
		if err := module.WriteJSON(m.QuestionsPath(), QuestionsFile{Questions: content.Questions}); err != nil {
			return err
		}
	}
	if len(content.Terms) > 0 {
		if err := module.WriteJSON(m.TermsPath(), TermsFile{Terms: content.Terms}); err != nil {
			return err
		}
	}
	if len(content.Scenarios) > 0 {
		if err := module.WriteJSON(m.ScenariosPath(), ScenariosFile{Scenarios: content.Scenarios}); err != nil {
			return err
		}
	}
	return nil
}
