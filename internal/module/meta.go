// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package module

import (
	"time"

	"github.com/sopforge/internal/extract"
)

// Meta is the small descriptive record written to content/meta.json.
type Meta struct {
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	PageCount        int       `json:"pageCount"`
	ExtractionMethod string    `json:"extractionMethod"`
	Warnings         []string  `json:"warnings,omitempty"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// BuildMeta aggregates a module's metadata from its extraction result.
// An empty title falls back to fallbackTitle (the title-cased slug).
func BuildMeta(m *Module, title, fallbackTitle string, res *extract.Result) Meta {
	if title == "" {
		title = fallbackTitle
	}
	return Meta{
		Title:            title,
		Slug:             m.Slug,
		PageCount:        res.PageCount,
		ExtractionMethod: string(res.Method),
		Warnings:         res.Warnings,
		GeneratedAt:      time.Now().UTC(),
	}
}
