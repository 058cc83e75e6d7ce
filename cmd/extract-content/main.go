// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// extract-content extracts text from module PDFs into per-module content:
// raw.txt, sections.json and meta.json. Scanned PDFs fall back through the
// OCR tiers automatically.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sopforge/internal/config"
	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/module"
	"github.com/sopforge/internal/scaffold"
)

var (
	root       = flag.String("root", ".", "Module root directory")
	configPath = flag.String("config", "", "Config file path (default <root>/sopforge.yaml)")
	slugFlag   = flag.String("slug", "", "Process only a single module by slug")
	force      = flag.Bool("force", false, "Re-extract even if the PDF is unchanged")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*root, *configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if _, err := logger.Init(cfg.LogFile); err != nil {
		logger.Fatalf("failed to init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := scaffold.New(*root, cfg)
	defer s.Close()

	if *slugFlag != "" {
		m, err := module.Find(*root, *slugFlag)
		if err != nil {
			logger.Fatalf("extract: %v", err)
		}
		if err := s.ExtractModule(ctx, m, *force); err != nil {
			logger.Fatalf("extract: %s: %v", m.Slug, err)
		}
		return
	}

	failures := s.ExtractAll(ctx, *force)
	for _, f := range failures {
		logger.Errorf("extract: %s: %v", f.Slug, f.Err)
	}
	if len(failures) > 0 {
		logger.Errorf("extract: %d module(s) failed", len(failures))
		os.Exit(1)
	}
	logger.Printf("extract: done")
}
