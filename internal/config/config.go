// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/sopforge/internal/logger"
)

// Config holds the pipeline configuration.
type Config struct {
	// Corrections maps known misspelled slug tokens to their canonical
	// spelling, applied on whole hyphen-delimited tokens.
	Corrections map[string]string `mapstructure:"corrections"`
	// Acronyms are preserved uppercase in display titles and headings.
	Acronyms []string `mapstructure:"acronyms"`

	Extract  ExtractConfig  `mapstructure:"extract"`
	Segment  SegmentConfig  `mapstructure:"segment"`
	Generate GenerateConfig `mapstructure:"generate"`
	Watch    WatchConfig    `mapstructure:"watch"`

	// WorkerCount caps concurrent module ingestion in batch mode.
	WorkerCount int `mapstructure:"worker_count"`
	// StateDB is the path of the SQLite extraction ledger, relative to
	// the module root.
	StateDB string `mapstructure:"state_db"`
	// LogFile receives a copy of all log output when set.
	LogFile string `mapstructure:"log_file"`
}

// ExtractConfig holds text-extraction settings.
type ExtractConfig struct {
	// MinCharsPerPage is the minimum-viable-text threshold: a tier's
	// output is rejected when its whitespace-stripped character count
	// averages below this per page.
	MinCharsPerPage int `mapstructure:"min_chars_per_page"`
	// OCRDPI is the rasterization resolution for the per-page OCR tier.
	OCRDPI int `mapstructure:"ocr_dpi"`
	// OCRLanguage is the tesseract language code.
	OCRLanguage string `mapstructure:"ocr_language"`
}

// SegmentConfig holds section-segmentation settings.
type SegmentConfig struct {
	// HeadingVocabulary is the closed set of structural labels accepted
	// as headings even without heading shape.
	HeadingVocabulary []string `mapstructure:"heading_vocabulary"`
	// HeadingMaxLen is the longest line still considered for heading shape.
	HeadingMaxLen int `mapstructure:"heading_max_len"`
	// HeadingMaxWords bounds the title-case heading heuristic.
	HeadingMaxWords int `mapstructure:"heading_max_words"`
}

// GenerateConfig holds learning-content generation settings.
type GenerateConfig struct {
	Model        string `mapstructure:"model"`
	MaxQuestions int    `mapstructure:"max_questions"`
	MaxTerms     int    `mapstructure:"max_terms"`
	MaxScenarios int    `mapstructure:"max_scenarios"`
	// PromptBudget clamps the serialized section outline fed to the
	// prompt, in characters.
	PromptBudget int `mapstructure:"prompt_budget"`
}

// WatchConfig holds drop-watcher settings.
type WatchConfig struct {
	// Paths are directories watched for dropped PDFs. Empty means the
	// module root only.
	Paths []string `mapstructure:"paths"`
	// DebounceMs is how long a file must stay quiet before ingestion.
	DebounceMs int `mapstructure:"debounce_ms"`
	// Notify enables desktop alerts on ingestion failures.
	Notify bool `mapstructure:"notify"`
}

// LoadConfig loads configuration from file and environment.
// An empty configPath looks for sopforge.yaml in the module root.
func LoadConfig(root, configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		configFile := filepath.Join(root, "sopforge.yaml")
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			// First run: write a commented starter config.
			if err := WriteDefaultConfig(configFile); err != nil {
				logger.Warnf("Could not write default config at %s: %v", configFile, err)
			}
		}
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else {
			logger.Debugf("No config file at %s, using defaults", configFile)
		}
	}

	// Allow environment variables, e.g. SOPFORGE_WORKER_COUNT
	v.SetEnvPrefix("SOPFORGE")
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// setDefaults registers the default value for every knob so a missing or
// partial config file still yields a runnable pipeline.
func setDefaults(v *viper.Viper) {
	v.SetDefault("corrections", map[string]string{
		"coporate": "corporate",
		"fince":    "finance",
	})
	v.SetDefault("acronyms", []string{"HIPAA", "HMIS", "PSH", "HUD"})

	v.SetDefault("extract.min_chars_per_page", 25)
	v.SetDefault("extract.ocr_dpi", 300)
	v.SetDefault("extract.ocr_language", "eng")

	v.SetDefault("segment.heading_vocabulary", []string{
		"Purpose", "Definitions", "Procedures", "Procedure", "Policy",
		"Scope", "Overview", "Background", "Responsibilities", "References",
	})
	v.SetDefault("segment.heading_max_len", 90)
	v.SetDefault("segment.heading_max_words", 12)

	v.SetDefault("generate.model", "gpt-4o-mini")
	v.SetDefault("generate.max_questions", 12)
	v.SetDefault("generate.max_terms", 24)
	v.SetDefault("generate.max_scenarios", 6)
	v.SetDefault("generate.prompt_budget", 16000)

	v.SetDefault("watch.paths", []string{})
	v.SetDefault("watch.debounce_ms", 500)
	v.SetDefault("watch.notify", true)

	v.SetDefault("worker_count", 4)
	v.SetDefault("state_db", ".sopforge/state.db")
	v.SetDefault("log_file", "")
}

// WriteDefaultConfig writes a commented starter config file. Existing files
// are left untouched.
func WriteDefaultConfig(configFile string) error {
	if _, err := os.Stat(configFile); err == nil {
		return nil
	}

	const defaultConfig = `# sopforge pipeline configuration

# Whole-token slug corrections (misspelling -> canonical).
corrections:
  coporate: corporate
  fince: finance

# Preserved uppercase in display titles and headings.
acronyms: [HIPAA, HMIS, PSH, HUD]

extract:
  min_chars_per_page: 25   # below this average, a tier is treated as scanned/no text layer
  ocr_dpi: 300
  ocr_language: eng

segment:
  heading_max_len: 90
  heading_max_words: 12

generate:
  model: gpt-4o-mini
  max_questions: 12
  max_terms: 24
  max_scenarios: 6

watch:
  debounce_ms: 500
  notify: true

worker_count: 4
`

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(configFile, []byte(defaultConfig), 0644)
}
