// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// module-watcher watches the module root (or configured drop directories)
// and ingests PDFs as they land: slug, placement, extraction, listing.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sopforge/internal/config"
	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/scaffold"
	"github.com/sopforge/internal/watch"
)

var (
	root       = flag.String("root", ".", "Module root directory")
	configPath = flag.String("config", "", "Config file path (default <root>/sopforge.yaml)")
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

	mgr, err := watch.NewManager(s, cfg.Watch.Paths,
		time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, cfg.Watch.Notify)
	if err != nil {
		logger.Fatalf("watch: %v", err)
	}
	if err := mgr.Start(); err != nil {
		logger.Fatalf("watch: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Printf("watch: shutting down")
	mgr.Stop()
}
