package imageref

import "sync"

type memoKey struct {
	id     string
	source MetadataSource
	o      Orientation
}

// Resolver wraps Resolve with optional memoization. The zero value and a nil
// *Resolver both resolve without caching. Safe for concurrent use.
type Resolver struct {
	memo bool

	mu    sync.RWMutex
	cache map[memoKey]Reference
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMemo caches references by item id, metadata source and orientation.
// Callers must Reset after item metadata changes.
func WithMemo() ResolverOption {
	return func(r *Resolver) {
		r.memo = true
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.memo {
		r.cache = make(map[memoKey]Reference)
	}
	return r
}

// Resolve returns the reference for item in orientation o.
func (r *Resolver) Resolve(item MediaItem, o Orientation) Reference {
	if r == nil || !r.memo || item.ID == "" {
		return Resolve(item, o)
	}

	key := memoKey{id: item.ID, source: item.Source, o: o}
	r.mu.RLock()
	ref, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return ref
	}

	ref = Resolve(item, o)
	r.mu.Lock()
	r.cache[key] = ref
	r.mu.Unlock()
	return ref
}

// URL resolves item and builds its image URL under baseURL.
func (r *Resolver) URL(baseURL string, item MediaItem, o Orientation) string {
	return r.Resolve(item, o).URL(baseURL)
}

// Len returns the number of memoized references.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// Reset drops all memoized references.
func (r *Resolver) Reset() {
	if r == nil || !r.memo {
		return
	}
	r.mu.Lock()
	r.cache = make(map[memoKey]Reference)
	r.mu.Unlock()
}
