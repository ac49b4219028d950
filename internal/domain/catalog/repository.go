package catalog

import "context"

// Repository serves session reference data: the sort catalog and the distinct
// facet value lists used to build filters.
type Repository interface {
	SortOptions(ctx context.Context, category string) (Catalog, error)
	Positions(ctx context.Context) ([]string, error)
	Competitions(ctx context.Context) ([]string, error)
	Teams(ctx context.Context) ([]string, error)
	Nations(ctx context.Context) ([]string, error)
}
