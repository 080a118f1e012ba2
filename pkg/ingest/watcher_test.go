package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestFileWatcher_TriggersReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("constraints: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(&FileWatcherConfig{
		Paths:            []string{dir},
		DebounceInterval: 20 * time.Millisecond,
		Extensions:       []string{".yaml"},
		SkipHidden:       true,
	}, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}

	var reloads atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fw.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("constraints:\n  - id: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("reload callback never fired")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
}

func TestFileWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(&FileWatcherConfig{
		Paths:            []string{dir},
		DebounceInterval: 20 * time.Millisecond,
		Extensions:       []string{".yaml"},
	}, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}

	var reloads atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fw.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	if reloads.Load() != 0 {
		t.Errorf("non-yaml write triggered %d reloads", reloads.Load())
	}

	cancel()
	<-done
}

func TestFileWatcher_DoubleWatchRejected(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(&FileWatcherConfig{
		Paths:            []string{dir},
		DebounceInterval: 20 * time.Millisecond,
		Extensions:       []string{".yaml"},
	}, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fw.Watch(ctx, func() error { return nil })
	}()

	time.Sleep(50 * time.Millisecond)
	if err := fw.Watch(ctx, func() error { return nil }); err == nil {
		t.Error("second Watch call should fail while running")
	}

	cancel()
	<-done
}
