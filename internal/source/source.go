package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/ports"
)

// Provider captures a single backing store for CV sheets (Sheets API, CSV export, SQL).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, sheet string) (*domain.RecordSet, error)
}

// Registry keeps a mapping from provider names to their implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Provider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("provider %s is not registered", name)
}

// Chain resolves names in order into a Chain.
func (r *Registry) Chain(names []string, log *slog.Logger) (*Chain, error) {
	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		provider, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return NewChain(log, providers...), nil
}

var errNoProviders = errors.New("no record providers configured")

// Chain tries providers in order and keeps the first successful result.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

var _ ports.RecordSource = (*Chain)(nil)

// NewChain wires providers in the order they should be attempted.
func NewChain(log *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: log}
}

// Providers lists the provider names in attempt order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Load never fails: when every provider errors it warns and returns
// the sheet's empty schema.
func (c *Chain) Load(ctx context.Context, sheet string) *domain.RecordSet {
	lastErr := errNoProviders
	for _, provider := range c.providers {
		set, err := provider.Fetch(ctx, sheet)
		if err == nil && set == nil {
			err = fmt.Errorf("%s returned no data", provider.Name())
		}
		if err != nil {
			c.debug("provider failed", "provider", provider.Name(), "sheet", sheet, "error", err)
			lastErr = err
			continue
		}

		c.debug("provider succeeded", "provider", provider.Name(), "sheet", sheet, "rows", set.Len())
		return set
	}

	if c.logger != nil {
		c.logger.Warn("could not access CV sheet", "sheet", sheet, "error", lastErr)
	}
	return domain.EmptyFor(sheet)
}

func (c *Chain) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
