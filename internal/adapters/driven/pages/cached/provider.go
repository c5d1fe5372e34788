// Package cached decorates a driven.PageProvider with an expiring LRU cache
// of page documents keyed by language and page id.
package cached

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.PageProvider = (*Provider)(nil)

type key struct {
	language string
	id       string
}

// Provider serves pages from the cache and falls back to the wrapped
// provider on a miss. Misses for unknown pages are not cached.
type Provider struct {
	next  driven.PageProvider
	cache *expirable.LRU[key, domain.PageDocument]
}

// New wraps next with a cache holding at most size pages for ttl.
// A non-positive ttl keeps entries until they are evicted or invalidated.
func New(next driven.PageProvider, size int, ttl time.Duration) *Provider {
	return &Provider{
		next:  next,
		cache: expirable.NewLRU[key, domain.PageDocument](size, nil, ttl),
	}
}

// GetPage returns the cached page or fetches and caches it.
func (p *Provider) GetPage(ctx context.Context, id, language string) (*domain.PageDocument, error) {
	k := key{language: language, id: id}
	if page, ok := p.cache.Get(k); ok {
		return &page, nil
	}

	page, err := p.next.GetPage(ctx, id, language)
	if err != nil {
		return nil, err
	}
	if page != nil {
		p.cache.Add(k, *page)
	}
	return page, nil
}

// ListPages always asks the wrapped provider and caches every page it
// returns, so a bulk re-index does not fetch each page again.
func (p *Provider) ListPages(ctx context.Context, language string) ([]domain.PageDocument, error) {
	pages, err := p.next.ListPages(ctx, language)
	for i := range pages {
		if pages[i].ID != "" {
			p.cache.Add(key{language: language, id: pages[i].ID}, pages[i])
		}
	}
	return pages, err
}

// Invalidate drops one page from the cache.
func (p *Provider) Invalidate(id, language string) {
	p.cache.Remove(key{language: language, id: id})
}

// Purge drops every cached page.
func (p *Provider) Purge() {
	p.cache.Purge()
}

// Len returns the number of cached pages.
func (p *Provider) Len() int {
	return p.cache.Len()
}
