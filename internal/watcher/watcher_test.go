package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherFiresForWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "tasks.json")
	other := filepath.Join(dir, "activity.jsonl")

	fired := make(chan struct{}, 10)
	w, err := New([]string{target}, func() { fired <- struct{}{} })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	if err := os.WriteFile(other, []byte("x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
		t.Fatal("unwatched file triggered the callback")
	case <-time.After(300 * time.Millisecond):
	}

	// Atomic replace, the way the json backend saves.
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, target); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("callback not fired for watched file")
	}
}

func TestCallbacksDoNotOverlap(t *testing.T) {
	var active, peak atomic.Int32
	done := make(chan struct{}, 2)
	w, err := New([]string{filepath.Join(t.TempDir(), "tasks.json")}, func() {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(300 * time.Millisecond)
		active.Add(-1)
		done <- struct{}{}
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	// The second timer fires while the first callback is still running.
	w.debounce()
	time.Sleep(2 * debounceDelay)
	w.debounce()

	for range 2 {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("callback not fired")
		}
	}
	if got := peak.Load(); got != 1 {
		t.Fatalf("%d callbacks ran at once, want 1", got)
	}
}
