// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// sync-modules moves PDFs dropped in the module root into slug-named
// module directories and regenerates the landing page. Safe to run
// multiple times.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/sopforge/internal/config"
	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/scaffold"
)

var (
	root       = flag.String("root", ".", "Module root directory")
	configPath = flag.String("config", "", "Config file path (default <root>/sopforge.yaml)")
	stampIndex = flag.Bool("stamp-index", false, "Overwrite each module index.html with the shared bootstrap page")
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

	s := scaffold.New(*root, cfg)
	defer s.Close()

	failures := s.Sync(*stampIndex)
	for _, f := range failures {
		logger.Errorf("sync: %s: %v", f.Slug, f.Err)
	}
	if len(failures) > 0 {
		logger.Errorf("sync: %d item(s) failed", len(failures))
		os.Exit(1)
	}
	logger.Printf("sync: done")
}
