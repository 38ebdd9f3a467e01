// Package search implements the property search service: a linear
// substring scan over an in-memory snapshot of the property catalogue,
// rebuilt wholesale from the property peer on demand.
package search

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

// PropertyFetcher pulls the full catalogue from the property peer.
type PropertyFetcher interface {
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
}

// Index is an explicitly owned, lock-protected snapshot of properties.
// It replaces the module-level mutable list of the original design:
// handlers receive a reference and mutate it only through Rebuild.
type Index struct {
	mu    sync.RWMutex
	props []domain.Property
}

// Replace swaps the snapshot wholesale.
func (ix *Index) Replace(props []domain.Property) {
	ix.mu.Lock()
	ix.props = props
	ix.mu.Unlock()
}

// Len reports the number of indexed properties.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.props)
}

// Scan returns the properties matching all supplied filters. q matches
// as a case-insensitive substring over title, description, city and
// address; city as a substring of the city field; propertyType exactly.
func (ix *Index) Scan(q, city, propertyType string) []domain.Property {
	q = strings.ToLower(strings.TrimSpace(q))
	city = strings.ToLower(strings.TrimSpace(city))
	propertyType = strings.ToLower(strings.TrimSpace(propertyType))

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]domain.Property, 0)
	for _, p := range ix.props {
		if q != "" {
			text := strings.ToLower(p.Title + " " + p.Description + " " + p.City + " " + p.Address)
			if !strings.Contains(text, q) {
				continue
			}
		}
		if city != "" && !strings.Contains(strings.ToLower(p.City), city) {
			continue
		}
		if propertyType != "" && strings.ToLower(string(p.PropertyType)) != propertyType {
			continue
		}
		results = append(results, p)
	}
	return results
}

// Service owns the index and answers queries against it.
type Service struct {
	index      *Index
	properties PropertyFetcher
	log        zerolog.Logger
}

func NewService(properties PropertyFetcher, log zerolog.Logger) *Service {
	return &Service{index: &Index{}, properties: properties, log: log}
}

// Rebuild refetches the catalogue and swaps the snapshot, returning the
// new index size. A peer failure leaves the previous snapshot in place.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	props, err := s.properties.List(ctx, domain.PropertyFilter{})
	if err != nil {
		return 0, err
	}
	s.index.Replace(props)
	return len(props), nil
}

// Search scans the snapshot. An empty index triggers a lazy rebuild;
// if that fails the scan proceeds over the empty snapshot rather than
// failing the query.
func (s *Service) Search(ctx context.Context, q, city, propertyType string) ([]domain.Property, error) {
	if s.index.Len() == 0 {
		if _, err := s.Rebuild(ctx); err != nil {
			s.log.Warn().Err(err).Msg("lazy index rebuild failed")
		}
	}
	return s.index.Scan(q, city, propertyType), nil
}
