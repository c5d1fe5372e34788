// Package watch keeps the search index in step with the page folder by
// re-indexing page files as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
	"github.com/custodia-labs/pageindex/internal/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before touching the index.
const DefaultDebounce = 250 * time.Millisecond

// PageFiles locates and decodes page files below a root directory.
type PageFiles interface {
	Root() string
	IsPageFile(path string) bool
	ReadPageFile(path string) (*domain.PageDocument, error)
}

// InvalidateFunc drops a page from any cache in front of the page files.
type InvalidateFunc func(id, language string)

// ChangeType classifies a filesystem event.
type ChangeType int

const (
	// ChangeUpserted means the page file was created or written.
	ChangeUpserted ChangeType = iota + 1

	// ChangeRemoved means the file or directory is gone.
	ChangeRemoved
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeUpserted:
		return "upserted"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is a filesystem event the index cares about.
type Change struct {
	Type ChangeType
	Path string
}

type pageRef struct {
	id       string
	language string
}

// Options configures a Watcher.
type Options struct {
	Debounce   time.Duration
	Invalidate InvalidateFunc
}

// Watcher re-indexes pages when their files change.
type Watcher struct {
	files      PageFiles
	index      driving.IndexService
	invalidate InvalidateFunc
	debounce   time.Duration

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	seen    map[string]pageRef    // Page file path to the page last read there.
	pending map[string]ChangeType // Paths waiting for the debounce window.
}

// New creates a watcher over the page files.
func New(files PageFiles, index driving.IndexService, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Invalidate == nil {
		opts.Invalidate = func(string, string) {}
	}
	return &Watcher{
		files:      files,
		index:      index,
		invalidate: opts.Invalidate,
		debounce:   opts.Debounce,
		seen:       make(map[string]pageRef),
		pending:    make(map[string]ChangeType),
	}
}

// Run watches the page root until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()
	w.fsw = fsw

	root := w.files.Root()
	if err := w.addRecursive(root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	logger.Info("Watching %s (%d pages known)", root, w.Known())

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if change := w.handleFsEvent(event); change != nil {
				w.queue(*change)
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher: %v", err)
		case <-timer.C:
			w.Flush(ctx)
		}
	}
}

// Known returns how many page files the watcher has seen.
func (w *Watcher) Known() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.seen)
}

// addRecursive watches every directory below root and records the pages
// already there, so later removals can be mapped back to page ids.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			if w.fsw != nil {
				return w.fsw.Add(path)
			}
			return nil
		}
		if w.files.IsPageFile(path) {
			w.remember(path)
		}
		return nil
	})
}

// remember reads a page file and records its id against the path.
func (w *Watcher) remember(path string) (pageRef, bool) {
	page, err := w.files.ReadPageFile(path)
	if err != nil || page.ID == "" {
		return pageRef{}, false
	}
	ref := pageRef{id: page.ID, language: page.Language}
	w.mu.Lock()
	w.seen[path] = ref
	w.mu.Unlock()
	return ref, true
}

// handleFsEvent turns a raw event into a Change, or nil when the event
// does not concern the index.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *Change {
	if isHidden(filepath.Base(event.Name)) {
		return nil
	}

	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return &Change{Type: ChangeRemoved, Path: event.Name}

	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		info, err := os.Stat(event.Name)
		if err != nil {
			return nil
		}
		if info.IsDir() {
			// A new folder may arrive with its page file already inside.
			if event.Op&fsnotify.Create != 0 {
				w.watchNewDir(event.Name)
			}
			return nil
		}
		if !w.files.IsPageFile(event.Name) {
			return nil
		}
		return &Change{Type: ChangeUpserted, Path: event.Name}

	default:
		return nil
	}
}

func (w *Watcher) watchNewDir(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if isHidden(d.Name()) {
				return filepath.SkipDir
			}
			if w.fsw != nil {
				_ = w.fsw.Add(path)
			}
			return nil
		}
		if w.files.IsPageFile(path) {
			w.queue(Change{Type: ChangeUpserted, Path: path})
		}
		return nil
	})
}

// queue records a change for the next flush. The latest event per path wins.
func (w *Watcher) queue(change Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[change.Path] = change.Type
}

// Flush applies every queued change to the index.
func (w *Watcher) Flush(ctx context.Context) {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]ChangeType)
	w.mu.Unlock()

	// Removals go first: a page moved to another folder arrives as a
	// removal of the old path and an upsert of the new one, both with
	// the same id.
	var removed, upserted []string
	for path, change := range pending {
		switch change {
		case ChangeRemoved:
			removed = append(removed, path)
		case ChangeUpserted:
			upserted = append(upserted, path)
		}
	}
	sort.Strings(removed)
	sort.Strings(upserted)

	for _, path := range removed {
		if err := w.remove(ctx, path); err != nil {
			logger.Warn("Watcher: %s %s: %v", ChangeRemoved, path, err)
		}
	}
	for _, path := range upserted {
		if err := w.upsert(ctx, path); err != nil {
			logger.Warn("Watcher: %s %s: %v", ChangeUpserted, path, err)
		}
	}
}

func (w *Watcher) upsert(ctx context.Context, path string) error {
	w.mu.Lock()
	previous, hadPrevious := w.seen[path]
	w.mu.Unlock()

	ref, ok := w.remember(path)
	if !ok {
		return nil
	}

	// The file now holds a different page; drop the one it used to hold.
	if hadPrevious && previous.id != ref.id {
		w.invalidate(previous.id, previous.language)
		if err := w.index.RemoveFromIndex(ctx, previous.id); err != nil {
			return err
		}
	}

	w.invalidate(ref.id, ref.language)
	if err := w.index.IndexPage(ctx, ref.id, ref.language); err != nil {
		return err
	}
	logger.Debug("Watcher indexed %s (%s) from %s", ref.id, ref.language, path)
	return nil
}

func (w *Watcher) remove(ctx context.Context, path string) error {
	// A removed directory takes every page below it.
	prefix := path + string(filepath.Separator)

	w.mu.Lock()
	var gone []pageRef
	for p, ref := range w.seen {
		if p == path || strings.HasPrefix(p, prefix) {
			gone = append(gone, ref)
			delete(w.seen, p)
		}
	}
	w.mu.Unlock()

	var errs []error
	for _, ref := range gone {
		w.invalidate(ref.id, ref.language)
		if err := w.index.RemoveFromIndex(ctx, ref.id); err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Debug("Watcher removed %s from the index", ref.id)
	}
	return errors.Join(errs...)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
