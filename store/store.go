package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
)

// Store is the process-wide keyed cache of raw series. A cached series is
// shared read-only by every chart spec referencing the same asset, concurrent
// fetches of the same asset are collapsed into one, and a fetch that exceeds
// the timeout surfaces as a recoverable FetchError.
type Store struct {
	dir     string
	byClass map[infinity.AssetClass]Provider
	timeout time.Duration

	cacheMu sync.RWMutex
	cache   map[infinity.AssetID]*infinity.RawSeries

	flight singleflight.Group
}

// Option tunes a Store at construction.
type Option func(*Store)

// WithProvider assigns the provider to every asset class it supports and
// that has no provider yet.
func WithProvider(p Provider) Option {
	return func(s *Store) {
		for _, class := range infinity.AssetClasses() {
			if p.Supports(class) {
				if _, taken := s.byClass[class]; !taken {
					s.byClass[class] = p
				}
			}
		}
	}
}

// WithClassProvider pins the provider serving one asset class.
func WithClassProvider(class infinity.AssetClass, p Provider) Option {
	return func(s *Store) { s.byClass[class] = p }
}

// WithTimeout overrides the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithDir enables persistence of tracked assets under the given directory.
func WithDir(dir string) Option {
	return func(s *Store) { s.dir = dir }
}

// New returns a store resolving series through the given options.
func New(opts ...Option) *Store {
	s := &Store{
		byClass: make(map[infinity.AssetClass]Provider),
		timeout: 10 * time.Second,
		cache:   make(map[infinity.AssetID]*infinity.RawSeries),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the provider serving the given asset class, if any.
func (s *Store) Provider(class infinity.AssetClass) (Provider, bool) {
	p, ok := s.byClass[class]
	return p, ok
}

// Get returns the raw series of the asset over the given range. A cache hit
// is shared read-only; a miss loads the tracked document from disk when
// present, and fetches from the asset's provider otherwise. Concurrent calls
// for the same asset result in at most one in-flight fetch.
func (s *Store) Get(ctx context.Context, id infinity.AssetID, r date.Range) (*infinity.RawSeries, error) {
	s.cacheMu.RLock()
	cached, ok := s.cache[id]
	s.cacheMu.RUnlock()
	if ok {
		return cached.Between(r), nil
	}

	v, err, _ := s.flight.Do(id.String(), func() (any, error) {
		// Another goroutine may have populated the cache while this one
		// waited its turn.
		s.cacheMu.RLock()
		cached, ok := s.cache[id]
		s.cacheMu.RUnlock()
		if ok {
			return cached, nil
		}
		series, err := s.resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cacheMu.Lock()
		s.cache[id] = series
		s.cacheMu.Unlock()
		return series, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*infinity.RawSeries).Between(r), nil
}

// resolve loads the series from the tracked document, or fetches it.
func (s *Store) resolve(ctx context.Context, id infinity.AssetID) (*infinity.RawSeries, error) {
	if s.dir != "" {
		if asset, err := s.load(id); err == nil {
			return asset.Series, nil
		}
	}
	return s.fetch(ctx, id)
}

// fetch asks the asset's provider for the full available history, under the
// store's timeout.
func (s *Store) fetch(ctx context.Context, id infinity.AssetID) (*infinity.RawSeries, error) {
	p, ok := s.byClass[id.Class]
	if !ok {
		return nil, &infinity.FetchError{ID: id, Err: fmt.Errorf("no provider for asset class %s", id.Class)}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	series, err := p.Fetch(ctx, id, fullHistory())
	if err != nil {
		return nil, &infinity.FetchError{ID: id, Err: err}
	}
	if series.Len() == 0 {
		return nil, &infinity.FetchError{ID: id, Err: fmt.Errorf("provider %s returned no data", p.Name())}
	}
	return series, nil
}

// Refresh invalidates the cached series and fetches it again, updating the
// tracked document when persistence is enabled.
func (s *Store) Refresh(ctx context.Context, id infinity.AssetID) (*infinity.RawSeries, error) {
	series, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheMu.Lock()
	s.cache[id] = series
	s.cacheMu.Unlock()

	if s.dir != "" {
		if err := s.saveTracked(ctx, id, series); err != nil {
			log.Printf("warning: cannot persist %s: %v", id, err)
		}
	}
	return series, nil
}

// saveTracked writes the refreshed series back into the asset's document,
// preserving metadata from the previous document when there is one.
func (s *Store) saveTracked(ctx context.Context, id infinity.AssetID, series *infinity.RawSeries) error {
	asset := &Asset{ID: id, Series: series, LastPull: date.Today()}
	if previous, err := s.load(id); err == nil {
		asset.Name = previous.Name
		asset.Currency = previous.Currency
		asset.Exchange = previous.Exchange
		asset.IPODate = previous.IPODate
	} else if p, ok := s.byClass[id.Class]; ok {
		if d, ok := p.(Describer); ok {
			if desc, err := d.Describe(ctx, id); err == nil {
				asset.Name = desc.Name
				asset.Currency = desc.Currency
				asset.Exchange = desc.Exchange
			}
		}
	}
	return s.save(asset)
}

// Track fetches the asset's full history and metadata and persists it as a
// tracked document.
func (s *Store) Track(ctx context.Context, id infinity.AssetID) (*Asset, error) {
	if s.dir == "" {
		return nil, fmt.Errorf("store has no data directory")
	}
	series, err := s.Refresh(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Asset{ID: id, Series: series, LastPull: date.Today()}, nil
}

// Untrack removes the asset's document and cache entry.
func (s *Store) Untrack(id infinity.AssetID) error {
	s.cacheMu.Lock()
	delete(s.cache, id)
	s.cacheMu.Unlock()
	return s.remove(id)
}

// fullHistory is the range requested from providers: everything they have.
func fullHistory() date.Range {
	return date.Range{From: date.New(1900, time.January, 1), To: date.Today()}
}
