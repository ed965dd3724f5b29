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
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/markdown-ts/cmd/mdts/config"
	"github.com/AleutianAI/markdown-ts/services/markdown/highlight"
	"github.com/AleutianAI/markdown-ts/services/markdown/outline"
	"github.com/AleutianAI/markdown-ts/services/markdown/syntax"
)

// fileWatcher watches a single file with write debouncing.
//
// The parent directory is watched rather than the file itself so that
// editors which replace the file on save (write to temp, rename over) keep
// triggering events.
type fileWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
}

// newFileWatcher creates a watcher for the given file.
func newFileWatcher(path string, debounce time.Duration, onChange func()) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &fileWatcher{
		path:     abs,
		watcher:  watcher,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// run processes events until the context is canceled.
//
// Events for other files in the directory are ignored. Rapid successive
// writes collapse into one onChange call per debounce window.
func (w *fileWatcher) run(ctx context.Context) {
	defer w.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// watchFeatureSet resolves the enabled features from flags then config.
func watchFeatureSet() (highlight.FeatureSet, error) {
	names := featureNames
	if len(names) == 0 {
		names = config.Global.Highlight.Features
	}
	if len(names) == 0 {
		names = highlight.FeatureNames()
	}
	known := highlight.AllFeatures()
	for _, name := range names {
		if !known.Has(name) {
			return nil, fmt.Errorf("unknown highlight feature %q", name)
		}
	}
	return highlight.NewFeatureSet(names...), nil
}

// runWatch drives the snapshot lifecycle directly: one long-lived parser,
// the current snapshot swapped via Reparse on every write.
func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	renderer := NewRenderer(config.Global.Render, colorMode, os.Stdout)

	var opts []syntax.DualParserOption
	if mb := config.Global.Highlight.MaxDocumentSizeMB; mb > 0 {
		opts = append(opts, syntax.WithMaxDocumentSize(mb*1024*1024))
	}
	parser := syntax.NewDualParser(opts...)
	if !parser.Ready() {
		return syntax.ErrGrammarNotReady
	}
	engine := highlight.NewEngine()

	enabled, err := watchFeatureSet()
	if err != nil {
		return err
	}

	debounce := 100 * time.Millisecond
	if ms := config.Global.Watch.DebounceMs; ms > 0 {
		debounce = time.Duration(ms) * time.Millisecond
	}

	var snap *syntax.Snapshot
	defer func() { snap.Close() }()

	render := func() {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
			return
		}

		next, err := parser.Reparse(context.Background(), snap, content)
		if err != nil {
			// Keep showing the previous version of the document.
			fmt.Fprintf(os.Stderr, "parse %s: %v\n", path, err)
			return
		}
		snap = next

		highlights := engine.Evaluate(context.Background(), snap, enabled)
		o := outline.Extract(snap)

		// Clear the screen between renders
		fmt.Print("\033[2J\033[H")
		fmt.Print(renderer.Render(content, highlights))
		fmt.Printf("\n-- %s | %d spans | %s | Ctrl+C to stop --\n",
			filepath.Base(path), len(highlights), printOutlineCount(o))
	}

	render()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := newFileWatcher(path, debounce, render)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	// The watcher goroutine calls render, which touches snap. Join it
	// before the deferred snap.Close runs.
	done := make(chan struct{})
	go func() {
		defer close(done)
		watcher.run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
	<-done
	return nil
}
