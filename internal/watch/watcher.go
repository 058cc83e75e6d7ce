// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"

	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/scaffold"
)

// Manager watches drop directories for PDFs and feeds them to the
// scaffolder. A dropped document is debounced until it stops changing,
// then placed, extracted, and added to the landing listing.
type Manager struct {
	paths      []string
	scaffolder *scaffold.Scaffolder
	notify     bool
	watcher    *fsnotify.Watcher
	debouncer  *Debouncer
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewManager creates a watcher over paths. An empty paths list watches the
// scaffolder's module root.
func NewManager(s *scaffold.Scaffolder, paths []string, debounce time.Duration, notify bool) (*Manager, error) {
	if len(paths) == 0 {
		paths = []string{s.Root()}
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	mgr := &Manager{
		paths:      paths,
		scaffolder: s,
		notify:     notify,
		watcher:    watcher,
		ctx:        ctx,
		cancel:     cancel,
	}
	mgr.debouncer = NewDebouncer(debounce, mgr.ingest)
	return mgr, nil
}

// Start registers the watch paths and runs the event loop until Stop.
func (m *Manager) Start() error {
	for _, path := range m.paths {
		if err := m.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		logger.Printf("watch: watching %s", path)
	}

	m.wg.Add(1)
	go m.eventLoop()
	return nil
}

// Stop shuts down the event loop and cancels pending ingestions.
func (m *Manager) Stop() {
	m.cancel()
	m.debouncer.Stop()
	m.watcher.Close()
	m.wg.Wait()
}

func (m *Manager) eventLoop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isDroppedPDF(event.Name) {
				continue
			}
			logger.Debugf("watch: %s on %s", event.Op, event.Name)
			m.debouncer.Trigger(event.Name)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("watch: watcher error: %v", err)
		}
	}
}

// ingest runs once a dropped PDF has settled.
func (m *Manager) ingest(path string) {
	if err := m.ctx.Err(); err != nil {
		return
	}

	logger.Printf("watch: ingesting %s", path)
	if err := m.scaffolder.Ingest(m.ctx, path); err != nil {
		logger.Errorf("watch: ingestion failed for %s: %v", path, err)
		m.alert(fmt.Sprintf("Ingestion failed: %s", filepath.Base(path)), err.Error())
		return
	}
	logger.Printf("watch: ingested %s", filepath.Base(path))
}

func (m *Manager) alert(title, message string) {
	if !m.notify {
		return
	}
	if err := beeep.Alert(title, message, ""); err != nil {
		logger.Debugf("watch: desktop alert failed: %v", err)
	}
}

// isDroppedPDF filters events down to real PDF drops, skipping the
// temporary files copy tools and editors leave behind.
func isDroppedPDF(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return false
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, "._") || strings.HasPrefix(base, ".") {
		return false
	}
	return !strings.HasSuffix(base, ".tmp")
}
