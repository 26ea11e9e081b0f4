package ports

import (
	"context"
	"time"

	"github.com/corpgraph/kindred/internal/core/domain"
)

// OfficerSource fetches raw officer records for one company from an
// upstream registry (bulk file, registry API). Sources hand the core
// fully-formed records; the core never performs I/O itself.
type OfficerSource interface {
	FetchOfficers(ctx context.Context, companyNumber string) ([]domain.RawOfficer, error)
	Name() string
}

// OfficerRepository persists ingested raw officer records so analysis can
// run without re-fetching the registry.
type OfficerRepository interface {
	SaveOfficers(ctx context.Context, companyNumber string, officers []domain.RawOfficer) error
	FindOfficersByCompany(ctx context.Context, companyNumber string) ([]domain.RawOfficer, error)
}

// ConnectionRepository persists scored officer pairs and serves the feed
// and reporting queries.
type ConnectionRepository interface {
	SaveBatch(ctx context.Context, pairs []domain.ScoredPair) error
	FindSince(ctx context.Context, since time.Time, limit int) ([]domain.ScoredPair, error)
	FindByCompany(ctx context.Context, companyNumber string) ([]domain.ScoredPair, error)
}

// Geocoder resolves a free-text address into coordinates. Geocoding happens
// at ingest time, before scoring; the address detector only ever sees
// pre-resolved coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lon float64, err error)
}
