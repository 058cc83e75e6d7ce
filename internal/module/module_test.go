// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package module

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sopforge/internal/extract"
)

func scaffoldModule(t *testing.T, root, slug string) *Module {
	t.Helper()
	m := New(root, slug)
	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(m.PDFPath(), []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("write pdf failed: %v", err)
	}
	return m
}

func TestList_FindsOnlyModuleDirs(t *testing.T) {
	root := t.TempDir()
	scaffoldModule(t, root, "access-to-housing")
	scaffoldModule(t, root, "hipaa-privacy")

	// Directory without a matching PDF is not a module.
	if err := os.MkdirAll(filepath.Join(root, "assets"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	// Hidden directories are ignored.
	if err := os.MkdirAll(filepath.Join(root, ".sopforge"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	modules, err := List(root)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("Expected 2 modules, got %d", len(modules))
	}
	if modules[0].Slug != "access-to-housing" || modules[1].Slug != "hipaa-privacy" {
		t.Errorf("Expected sorted slugs, got %s, %s", modules[0].Slug, modules[1].Slug)
	}
}

func TestFind_MissingModule(t *testing.T) {
	root := t.TempDir()
	if _, err := Find(root, "nope"); err == nil {
		t.Fatalf("Expected error for missing module")
	}
}

func TestWriteJSON_Atomic(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "data", "questions.json")

	if err := WriteJSON(path, map[string]string{"ok": "yes"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	// A failed write must leave the previous file intact.
	if err := WriteJSON(path, map[string]interface{}{"bad": make(chan int)}); err == nil {
		t.Fatalf("Expected marshal error")
	}

	var out map[string]string
	if err := ReadJSON(path, &out); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if out["ok"] != "yes" {
		t.Errorf("Previous file was clobbered: %v", out)
	}

	// No temp file debris either.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("Leftover temp file: %s", e.Name())
		}
	}
}

func TestBuildMeta_TitleFallback(t *testing.T) {
	m := New(t.TempDir(), "access-to-housing")
	res := &extract.Result{
		Method:    extract.MethodOCRTool,
		PageCount: 3,
		Warnings:  []string{"no usable text layer, OCR applied"},
	}

	meta := BuildMeta(m, "", "Access to Housing", res)
	if meta.Title != "Access to Housing" {
		t.Errorf("Expected fallback title, got %q", meta.Title)
	}
	if meta.ExtractionMethod != "ocr_tool" {
		t.Errorf("Expected ocr_tool, got %q", meta.ExtractionMethod)
	}
	if meta.PageCount != 3 || len(meta.Warnings) != 1 {
		t.Errorf("Unexpected meta: %+v", meta)
	}
	if meta.GeneratedAt.IsZero() {
		t.Errorf("GeneratedAt not set")
	}
}
