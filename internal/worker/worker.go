// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package worker

import (
	"context"
	"sync"

	"github.com/sopforge/internal/logger"
	"github.com/sopforge/internal/module"
)

// HandlerFunc processes one module. It should return an error if
// processing fails; the error is collected, not fatal to the batch.
type HandlerFunc func(ctx context.Context, m *module.Module) error

// ModuleError records a per-module failure from a batch run.
type ModuleError struct {
	Slug string
	Err  error
}

// RunPool fans modules out over workerCount goroutines and waits for all of
// them. Modules are independent, so failures are collected per module and
// the rest of the batch keeps going.
func RunPool(ctx context.Context, modules []*module.Module, workerCount int, handler HandlerFunc) []ModuleError {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(modules) {
		workerCount = len(modules)
	}
	logger.Debugf("worker: starting %d workers for %d modules", workerCount, len(modules))

	jobs := make(chan *module.Module)
	var (
		mu       sync.Mutex
		failures []ModuleError
		wg       sync.WaitGroup
	)

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		workerID := i + 1
		go func() {
			defer wg.Done()
			for m := range jobs {
				if err := ctx.Err(); err != nil {
					mu.Lock()
					failures = append(failures, ModuleError{Slug: m.Slug, Err: err})
					mu.Unlock()
					continue
				}
				if err := handler(ctx, m); err != nil {
					logger.Errorf("worker %d: %s failed: %v", workerID, m.Slug, err)
					mu.Lock()
					failures = append(failures, ModuleError{Slug: m.Slug, Err: err})
					mu.Unlock()
					continue
				}
				logger.Debugf("worker %d: %s done", workerID, m.Slug)
			}
		}()
	}

	for _, m := range modules {
		jobs <- m
	}
	close(jobs)
	wg.Wait()

	return failures
}
