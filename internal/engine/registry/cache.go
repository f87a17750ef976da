// Package registry memoizes shared-registry membership lookups for a session.
package registry

import (
	"sync"

	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
)

// Cache answers "is this file provided by the shared registry" once per path.
// The registry is assumed immutable for the lifetime of the cache, so entries
// are never invalidated.
type Cache struct {
	query   ports.RegistryQuery
	logger  ports.Logger
	metrics ports.Metrics

	members   map[domain.PathKey]bool
	closeOnce sync.Once
	closeErr  error
}

// NewCache wraps query. The cache owns query and closes it in Close.
func NewCache(query ports.RegistryQuery, logger ports.Logger, metrics ports.Metrics) *Cache {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Cache{
		query:   query,
		logger:  logger,
		metrics: metrics,
		members: make(map[domain.PathKey]bool),
	}
}

// Contains reports whether path is a registry member.
// A failed query counts as "not provided", so the file is copied rather than lost.
func (c *Cache) Contains(path string) bool {
	key := domain.NewPathKey(path)
	if member, ok := c.members[key]; ok {
		c.metrics.RegistryLookup(true)
		return member
	}
	c.metrics.RegistryLookup(false)

	member := false
	if c.query != nil {
		var err error
		member, err = c.query.IsProvidedByRegistry(path)
		if err != nil {
			c.logger.Warn("registry query failed for " + path + ": " + err.Error())
			member = false
		}
	}
	c.members[key] = member
	return member
}

// Len returns the number of memoized paths.
func (c *Cache) Len() int {
	return len(c.members)
}

// Close releases the query facility. Only the first call has an effect.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		if c.query != nil {
			c.closeErr = c.query.Close()
		}
	})
	return c.closeErr
}
