// Package feed aggregates the home feed from the media server and offline
// storage and publishes it as a stream of states.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/homefeed/pkg/imageref"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks . Source,OfflineSource

// Source reads home feed content from the media server.
type Source interface {
	UserViews(ctx context.Context) ([]imageref.MediaItem, error)
	ResumeItems(ctx context.Context, limit int) ([]imageref.MediaItem, error)
	NextUp(ctx context.Context, limit int) ([]imageref.MediaItem, error)
	LatestItems(ctx context.Context, parentID string, limit int) ([]imageref.MediaItem, error)
}

// OfflineSource lists items available without the server.
type OfflineSource interface {
	MediaItems(ctx context.Context) ([]imageref.MediaItem, error)
}

// LoadOptions controls what a Load fetches. Zero limits use defaults.
type LoadOptions struct {
	IncludeLibraries bool
	ResumeLimit      int
	NextUpLimit      int
	LatestLimit      int
}

const (
	defaultResumeLimit = 12
	defaultNextUpLimit = 12
	defaultLatestLimit = 16
	latestConcurrency  = 4
)

func (o LoadOptions) withDefaults() LoadOptions {
	if o.ResumeLimit <= 0 {
		o.ResumeLimit = defaultResumeLimit
	}
	if o.NextUpLimit <= 0 {
		o.NextUpLimit = defaultNextUpLimit
	}
	if o.LatestLimit <= 0 {
		o.LatestLimit = defaultLatestLimit
	}
	return o
}

// Provider owns the current home feed state.
type Provider struct {
	source  Source
	offline OfflineSource
	logger  *slog.Logger

	mu      sync.RWMutex
	state   State
	gen     uint64
	subs    []chan State
	onReady []func(Ready)
	closed  bool
}

// NewProvider creates a provider. source or offline may be nil, but not both
// if Load is expected to succeed.
func NewProvider(source Source, offline OfflineSource, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		source:  source,
		offline: offline,
		logger:  logger.With("component", "feed"),
		state:   Loading{},
	}
}

// State returns the current state.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Load fetches the home feed and publishes the result. Only the most recent
// concurrent Load publishes its outcome. The returned state is the one this
// call produced.
func (p *Provider) Load(ctx context.Context, opts LoadOptions) State {
	opts = opts.withDefaults()

	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()
	p.publish(gen, Loading{})

	downloads := p.loadOffline(ctx)

	var st State
	sections, err := p.loadServer(ctx, opts)
	switch {
	case err == nil:
		if len(downloads) > 0 {
			sections = append(sections, downloadsSection(downloads))
		}
		st = Ready{Sections: sections}
	case len(downloads) > 0:
		p.logger.Warn("server unavailable, showing downloads only", "error", err, "downloads", len(downloads))
		st = Ready{Sections: []Section{downloadsSection(downloads)}}
	default:
		p.logger.Error("home feed load failed", "error", err)
		st = Failed{Err: err}
	}

	p.publish(gen, st)
	if r, ok := st.(Ready); ok {
		p.logger.Debug("home feed loaded", "sections", len(r.Sections))
	}
	return st
}

func downloadsSection(items []imageref.MediaItem) Section {
	return CuratedSection{Key: DownloadsID, Title: "Downloads", Media: items}
}

func (p *Provider) loadOffline(ctx context.Context) []imageref.MediaItem {
	if p.offline == nil {
		return nil
	}
	items, err := p.offline.MediaItems(ctx)
	if err != nil {
		p.logger.Warn("failed to read offline items", "error", err)
		return nil
	}
	return items
}

func (p *Provider) loadServer(ctx context.Context, opts LoadOptions) ([]Section, error) {
	if p.source == nil {
		return nil, ErrNoSource
	}

	var views, resume, nextUp []imageref.MediaItem
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		views, err = p.source.UserViews(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		resume, err = p.source.ResumeItems(gctx, opts.ResumeLimit)
		return err
	})
	g.Go(func() error {
		var err error
		nextUp, err = p.source.NextUp(gctx, opts.NextUpLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	latest := make([][]imageref.MediaItem, len(views))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(latestConcurrency)
	for i, v := range views {
		g.Go(func() error {
			items, err := p.source.LatestItems(gctx, v.ID, opts.LatestLimit)
			if err != nil {
				return err
			}
			latest[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sections []Section
	if opts.IncludeLibraries && len(views) > 0 {
		sections = append(sections, LibraryList{Title: "Libraries", Libraries: views})
	}
	if len(resume) > 0 {
		sections = append(sections, CuratedSection{Key: ContinueWatchingID, Title: "Continue Watching", Media: resume})
	}
	if len(nextUp) > 0 {
		sections = append(sections, CuratedSection{Key: NextUpID, Title: "Next Up", Media: nextUp})
	}
	for i, v := range views {
		if len(latest[i]) == 0 {
			continue
		}
		sections = append(sections, ViewSection{ViewID: v.ID, Title: "Latest " + v.Name, Media: latest[i]})
	}
	return sections, nil
}

// publish stores st and delivers it to subscribers unless a newer load has
// started since gen was taken. Sends never block, so the lock is held
// throughout and Close cannot close a channel mid-send.
func (p *Provider) publish(gen uint64, st State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen != p.gen {
		return
	}

	if r, ok := st.(Ready); ok {
		for _, fn := range p.onReady {
			fn(r)
		}
	}
	p.state = st

	dropped := 0
	for _, ch := range p.subs {
		select {
		case ch <- st:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		p.logger.Warn("subscriber channel full, dropping state", "subscribers", dropped)
	}
}

// OnReady registers fn to run with every Ready state before State or any
// subscriber can observe it. fn must not call back into the provider.
func (p *Provider) OnReady(fn func(Ready)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onReady = append(p.onReady, fn)
}

// Subscribe returns a channel that receives every published state.
func (p *Provider) Subscribe(bufferSize int) <-chan State {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan State, bufferSize)
	if p.closed {
		close(ch)
		return ch
	}
	p.subs = append(p.subs, ch)
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (p *Provider) Unsubscribe(ch <-chan State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, sub := range p.subs {
		if sub == ch {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close closes all subscriber channels. Later loads still run but publish
// nothing.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
	return nil
}
