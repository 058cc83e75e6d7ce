// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package watch

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestIsDroppedPDF(t *testing.T) {
	accepted := []string{
		"/drop/Intake Policy.pdf",
		"/drop/UPPER.PDF",
	}
	for _, p := range accepted {
		if !isDroppedPDF(p) {
			t.Errorf("Expected %s to be accepted", p)
		}
	}

	rejected := []string{
		"/drop/notes.txt",
		"/drop/~$Intake Policy.pdf",
		"/drop/._Intake Policy.pdf",
		"/drop/.hidden.pdf",
		"/drop/partial.pdf.tmp",
	}
	for _, p := range rejected {
		if isDroppedPDF(p) {
			t.Errorf("Expected %s to be rejected", p)
		}
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var calls int32
	d := NewDebouncer(20*time.Millisecond, func(string) {
		atomic.AddInt32(&calls, 1)
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger("/drop/doc.pdf")
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 coalesced callback, got %d", got)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var calls int32
	d := NewDebouncer(20*time.Millisecond, func(string) {
		atomic.AddInt32(&calls, 1)
	})
	defer d.Stop()

	d.Trigger("/drop/doc.pdf")
	d.Cancel("/drop/doc.pdf")

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("Expected cancelled timer to never fire, got %d calls", got)
	}
}
