// Package folder provides a driven.PageProvider that reads page documents
// from a directory tree with one folder per language:
//
//	<root>/en/home.json
//	<root>/en/departments/departments.json
//	<root>/en/departments/hr/hr.json
//
// A page lives in <folder>/<folder>.json, except the language home page
// which is <language>/home.json. Media folders and hidden entries are
// skipped, as are JSON files without a uniqueId (navigation, footer).
package folder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
	"github.com/custodia-labs/pageindex/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.PageProvider = (*Provider)(nil)

// HomeFile is the page file at the top of a language folder.
const HomeFile = "home.json"

// skipDirs never contain pages.
var skipDirs = map[string]bool{
	"_media": true,
	"images": true,
	"files":  true,
	"videos": true,
}

// Provider reads pages from a directory tree.
type Provider struct {
	root string

	mu        sync.RWMutex
	locations map[location]string // last file each page was read from
}

type location struct{ id, language string }

// New creates a provider rooted at root.
func New(root string) *Provider {
	return &Provider{
		root:      root,
		locations: make(map[location]string),
	}
}

// Root returns the page root directory.
func (p *Provider) Root() string {
	return p.root
}

// GetPage returns the page with the given id. The file the page was last
// read from is tried first; if it no longer holds the page, the language
// folder is walked.
func (p *Provider) GetPage(ctx context.Context, id, language string) (*domain.PageDocument, error) {
	if page, ok := p.readKnown(id, language); ok {
		return page, nil
	}

	pages, err := p.ListPages(ctx, language)
	for i := range pages {
		if pages[i].ID == id {
			return &pages[i], nil
		}
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return nil, domain.ErrNotFound
}

// ListPages walks the language folder and returns every page in it.
// Unreadable or malformed page files are skipped.
func (p *Provider) ListPages(ctx context.Context, language string) ([]domain.PageDocument, error) {
	langDir := filepath.Join(p.root, language)
	info, err := os.Stat(langDir)
	if err != nil {
		return nil, fmt.Errorf("%w: language %s: %w", domain.ErrListingFailure, language, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: language %s: not a directory", domain.ErrListingFailure, language)
	}

	var pages []domain.PageDocument
	if page, ok := p.tryRead(filepath.Join(langDir, HomeFile)); ok {
		pages = append(pages, *page)
	}

	err = filepath.WalkDir(langDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() || path == langDir {
			return nil
		}
		if skipDirs[d.Name()] || isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if page, ok := p.tryRead(filepath.Join(path, d.Name()+".json")); ok {
			pages = append(pages, *page)
		}
		return nil
	})
	if err != nil {
		return pages, fmt.Errorf("%w: walking %s: %w", domain.ErrListingFailure, langDir, err)
	}

	logger.Debug("Listed %d pages under %s", len(pages), langDir)
	return pages, nil
}

// readKnown reads the remembered file for a page, if it still holds it.
func (p *Provider) readKnown(id, language string) (*domain.PageDocument, bool) {
	key := location{id: id, language: language}
	p.mu.RLock()
	path, ok := p.locations[key]
	p.mu.RUnlock()
	if !ok {
		return nil, false
	}

	page, err := p.ReadPageFile(path)
	if err != nil || page.ID != id || page.Language != language {
		p.mu.Lock()
		if p.locations[key] == path {
			delete(p.locations, key)
		}
		p.mu.Unlock()
		return nil, false
	}
	return page, true
}

// tryRead reads a page file, logging and skipping files that are not pages.
func (p *Provider) tryRead(path string) (*domain.PageDocument, bool) {
	page, err := p.ReadPageFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Skipping %s: %v", path, err)
		}
		return nil, false
	}
	if page.ID == "" {
		return nil, false
	}
	return page, true
}

// ReadPageFile decodes the page file at path. Language and Path come from
// where the file sits under the root; Modified falls back to the file's
// modification time.
func (p *Provider) ReadPageFile(path string) (*domain.PageDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var page domain.PageDocument
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", domain.ErrInvalidInput, path, err)
	}

	rel, err := filepath.Rel(p.root, filepath.Dir(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("%w: %s is outside %s", domain.ErrInvalidInput, path, p.root)
	}
	rel = filepath.ToSlash(rel)
	page.Language, _, _ = strings.Cut(rel, "/")
	page.Path = rel

	if page.Modified == 0 {
		if info, err := os.Stat(path); err == nil {
			page.Modified = info.ModTime().Unix()
		}
	}

	if page.ID != "" {
		p.mu.Lock()
		p.locations[location{id: page.ID, language: page.Language}] = path
		p.mu.Unlock()
	}
	return &page, nil
}

// IsPageFile reports whether path is where a page document would live:
// <language>/home.json or <folder>/<folder>.json below the root.
func (p *Provider) IsPageFile(path string) bool {
	rel, err := filepath.Rel(p.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, part := range parts {
		if isHidden(part) || skipDirs[part] {
			return false
		}
	}
	switch {
	case len(parts) == 2:
		return parts[1] == HomeFile
	case len(parts) > 2:
		return parts[len(parts)-1] == parts[len(parts)-2]+".json"
	default:
		return false
	}
}

// isHidden reports whether a file or directory name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
