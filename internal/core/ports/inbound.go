package ports

import (
	"context"

	"halalradar/internal/core/domain"
)

// SnapshotImporter is the inbound contract for upserting collector snapshots
// into the relational store.
type SnapshotImporter interface {
	ImportSnapshot(ctx context.Context, name string) (ImportReport, error)
}

// Collector is the inbound contract for the discovery + harvesting run.
type Collector interface {
	Collect(ctx context.Context) (CollectReport, error)
}

// CollectReport aggregates one collector run.
type CollectReport struct {
	RunID       string
	Discovered  int
	Kept        int
	ReviewsSeen int
}

// ImportReport aggregates one import run.
type ImportReport struct {
	Restaurants int
	Reviews     int
	Skipped     int
}

// CandidateScanner is the inbound contract for the full potential-halal
// re-scan.
type CandidateScanner interface {
	ScanAll(ctx context.Context) (ScanReport, error)
}

// ScanReport aggregates one scan run. Failed counts restaurants whose flag
// update errored; the scan continues past them.
type ScanReport struct {
	Scanned   int
	Flagged   int
	Unflagged int
	Failed    int
}

// ComplianceAnalyzer is the inbound contract for classifying one restaurant.
type ComplianceAnalyzer interface {
	AnalyzeByID(ctx context.Context, restaurantID int64) error
}

// RestaurantQueryService is the inbound read model for the HTTP surface.
type RestaurantQueryService interface {
	ListSummaries(ctx context.Context) ([]domain.RestaurantSummary, error)
	AdminList(ctx context.Context, filter domain.AdminFilter) (domain.AdminPage, error)
	AdminGet(ctx context.Context, id int64) (*domain.Restaurant, error)
}
