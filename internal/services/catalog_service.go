package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"FRANCIGENA_BACK-END/internal/itinerary"
	"FRANCIGENA_BACK-END/internal/models"
)

// CatalogService caches the route catalog. It is loaded on first use and
// kept until Refresh.
type CatalogService struct {
	source CatalogSource
	logger *slog.Logger

	mu      sync.RWMutex
	catalog *itinerary.Catalog
}

func NewCatalogService(source CatalogSource, logger *slog.Logger) *CatalogService {
	return &CatalogService{source: source, logger: logger}
}

// Catalog returns the cached catalog, loading it if needed.
func (s *CatalogService) Catalog(ctx context.Context) (*itinerary.Catalog, error) {
	s.mu.RLock()
	c := s.catalog
	s.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, nil
}

// Refresh reloads segments and waypoints from the source.
func (s *CatalogService) Refresh(ctx context.Context) error {
	segments, err := s.source.ListSegments(ctx)
	if err != nil {
		return fmt.Errorf("load segments: %w", err)
	}
	waypoints, err := s.source.ListWaypoints(ctx)
	if err != nil {
		return fmt.Errorf("load waypoints: %w", err)
	}

	c, err := itinerary.NewCatalog(segments)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	if len(waypoints) != len(segments)+1 {
		return fmt.Errorf("build catalog: %w: %d waypoints for %d segments",
			itinerary.ErrInconsistentRange, len(waypoints), len(segments))
	}

	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()

	s.logger.Info("catalog loaded", "segments", len(segments), "waypoints", len(waypoints))
	return nil
}

func (s *CatalogService) Segments(ctx context.Context) ([]models.Segment, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Segments(), nil
}

func (s *CatalogService) Waypoints(ctx context.Context) ([]models.Waypoint, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Waypoints(), nil
}
