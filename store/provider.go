// Package store owns the raw asset price series: a process-wide keyed cache
// in front of the market-data providers, plus the on-disk documents of the
// assets the user tracks. The core pipeline only ever sees the narrow Get
// boundary and never performs I/O itself.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
)

// Provider is a market-data source able to fetch historical series.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name identifies the provider in configuration and logs.
	Name() string
	// Supports reports whether the provider can serve the given asset class.
	Supports(class infinity.AssetClass) bool
	// Fetch returns the daily series of the asset over the given range.
	Fetch(ctx context.Context, id infinity.AssetID, r date.Range) (*infinity.RawSeries, error)
}

// Description is optional metadata a provider knows about an asset.
type Description struct {
	Name     string
	Currency string
	Exchange string
}

// Describer is implemented by providers that can describe an asset beyond
// its price series.
type Describer interface {
	Describe(ctx context.Context, id infinity.AssetID) (Description, error)
}

// SearchResult is one hit of a provider symbol search.
type SearchResult struct {
	Symbol   string
	Name     string
	Exchange string
	Currency string
	Type     string
}

// Searcher is implemented by providers that support symbol lookup.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// BuildOptions tune the construction of a registered provider.
type BuildOptions struct {
	// UserAgent is sent on outgoing requests.
	UserAgent string
	// CacheDir enables the on-disk HTTP response cache when non-empty.
	CacheDir string
}

// Builder constructs a Provider from build options.
type Builder func(o BuildOptions) (Provider, error)

var (
	registry   = make(map[string]Builder)
	registryMu sync.RWMutex
)

// Register records a provider constructor under its name. Provider packages
// call it from their init, so a blank import is enough to make a provider
// available.
func Register(name string, b Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(strings.TrimSpace(name))] = b
}

// Build constructs the provider registered under name.
func Build(name string, o BuildOptions) (Provider, error) {
	registryMu.RLock()
	b, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return b(o)
}

// Registered returns the names of all registered providers, for usage
// messages.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
