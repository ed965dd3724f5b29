// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherDetectsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# v1\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	changed := make(chan struct{}, 8)
	watcher, err := newFileWatcher(path, 20*time.Millisecond, func() {
		changed <- struct{}{}
	})
	if err != nil {
		t.Fatalf("newFileWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.run(ctx)

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("# v2\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification after write")
	}
}

func TestFileWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	sibling := filepath.Join(dir, "other.md")
	if err := os.WriteFile(path, []byte("# doc\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	changed := make(chan struct{}, 8)
	watcher, err := newFileWatcher(path, 20*time.Millisecond, func() {
		changed <- struct{}{}
	})
	if err != nil {
		t.Fatalf("newFileWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.run(ctx)

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(sibling, []byte("# other\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-changed:
		t.Fatal("notified for a sibling file's write")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcherStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# doc\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	watcher, err := newFileWatcher(path, 20*time.Millisecond, func() {})
	if err != nil {
		t.Fatalf("newFileWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		watcher.run(ctx)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	_, err := newFileWatcher(filepath.Join(t.TempDir(), "nope", "doc.md"), time.Millisecond, func() {})
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}
