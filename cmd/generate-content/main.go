// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// generate-content produces flashcard terms, quiz questions and scenario
// exercises for a module from its extracted sections, either by calling
// the OpenAI API or by exporting prompts for manual use (--offline).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sopforge/internal/config"
	"github.com/sopforge/internal/generate"
	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/module"
	"github.com/sopforge/internal/scaffold"
)

var (
	root         = flag.String("root", ".", "Module root directory")
	configPath   = flag.String("config", "", "Config file path (default <root>/sopforge.yaml)")
	slugFlag     = flag.String("slug", "", "Single module slug to process")
	all          = flag.Bool("all", false, "Process all modules")
	offline      = flag.Bool("offline", false, "Write prompt files instead of calling the API")
	maxQuestions = flag.Int("max-questions", 0, "Question limit (default from config)")
	maxTerms     = flag.Int("max-terms", 0, "Term limit (default from config)")
	maxScenarios = flag.Int("max-scenarios", 0, "Scenario limit (default from config)")
	model        = flag.String("model", "", "Model name (default from config)")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	if (*slugFlag == "") == !*all {
		logger.Fatalf("generate: exactly one of --slug or --all is required")
	}

	cfg, err := config.LoadConfig(*root, *configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if _, err := logger.Init(cfg.LogFile); err != nil {
		logger.Fatalf("failed to init logger: %v", err)
	}

	limits := generate.Limits{
		MaxQuestions: cfg.Generate.MaxQuestions,
		MaxTerms:     cfg.Generate.MaxTerms,
		MaxScenarios: cfg.Generate.MaxScenarios,
	}
	if *maxQuestions > 0 {
		limits.MaxQuestions = *maxQuestions
	}
	if *maxTerms > 0 {
		limits.MaxTerms = *maxTerms
	}
	if *maxScenarios > 0 {
		limits.MaxScenarios = *maxScenarios
	}

	modelName := cfg.Generate.Model
	if *model != "" {
		modelName = *model
	}
	source := generate.NewOpenAIClient(modelName, cfg.Generate.PromptBudget)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := scaffold.New(*root, cfg)
	defer s.Close()

	if *slugFlag != "" {
		m, err := module.Find(*root, *slugFlag)
		if err != nil {
			logger.Fatalf("generate: %v", err)
		}
		if err := s.GenerateModule(ctx, m, source, *offline, limits); err != nil {
			logger.Fatalf("generate: %s: %v", m.Slug, err)
		}
		return
	}

	failures := s.GenerateAll(ctx, source, *offline, limits)
	for _, f := range failures {
		logger.Errorf("generate: %s: %v", f.Slug, f.Err)
	}
	if len(failures) > 0 {
		logger.Errorf("generate: %d module(s) failed", len(failures))
		os.Exit(1)
	}
	logger.Printf("generate: done")
}
