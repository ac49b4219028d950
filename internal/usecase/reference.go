package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/soccerlens/scout/internal/domain/catalog"
	"github.com/soccerlens/scout/internal/platform/cache"
	"github.com/soccerlens/scout/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// Facets are the distinct values offered for filter construction.
type Facets struct {
	Positions    []string
	Competitions []string
	Teams        []string
	Nations      []string
}

// ReferenceService serves the sort catalog and filter facets, memoized for
// the session so repeated screen mounts do not re-hit the backend.
type ReferenceService struct {
	repo   catalog.Repository
	store  *cache.Store
	logger *logging.Logger
}

func NewReferenceService(repo catalog.Repository, store *cache.Store, logger *logging.Logger) *ReferenceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReferenceService{repo: repo, store: store, logger: logger}
}

func (s *ReferenceService) SortCatalog(ctx context.Context, category string) (catalog.Catalog, error) {
	ctx, span := startSpan(ctx, "reference.sort_catalog")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		out, err := s.repo.SortOptions(ctx, category)
		if err != nil {
			return nil, mapBackendError(err)
		}
		return out, nil
	}

	if s.store == nil {
		out, err := load(ctx)
		if err != nil {
			return catalog.Catalog{}, err
		}
		return out.(catalog.Catalog), nil
	}

	out, err := s.store.GetOrLoad(ctx, "sort_catalog:"+category, load)
	if err != nil {
		return catalog.Catalog{}, err
	}
	parsed, ok := out.(catalog.Catalog)
	if !ok {
		return catalog.Catalog{}, crerr.Newf("unexpected cached catalog type %T", out)
	}
	return parsed, nil
}

// Facets fetches all four facet lists in parallel. Any single failure fails
// the whole call; the lists are only useful together.
func (s *ReferenceService) Facets(ctx context.Context) (Facets, error) {
	ctx, span := startSpan(ctx, "reference.facets")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		var facets Facets
		p := pool.New().WithContext(ctx).WithCancelOnError()
		p.Go(func(ctx context.Context) error {
			out, err := s.repo.Positions(ctx)
			facets.Positions = out
			return err
		})
		p.Go(func(ctx context.Context) error {
			out, err := s.repo.Competitions(ctx)
			facets.Competitions = out
			return err
		})
		p.Go(func(ctx context.Context) error {
			out, err := s.repo.Teams(ctx)
			facets.Teams = out
			return err
		})
		p.Go(func(ctx context.Context) error {
			out, err := s.repo.Nations(ctx)
			facets.Nations = out
			return err
		})
		if err := p.Wait(); err != nil {
			return nil, mapBackendError(err)
		}
		return facets, nil
	}

	if s.store == nil {
		out, err := load(ctx)
		if err != nil {
			return Facets{}, err
		}
		return out.(Facets), nil
	}

	out, err := s.store.GetOrLoad(ctx, "facets", load)
	if err != nil {
		return Facets{}, err
	}
	facets, ok := out.(Facets)
	if !ok {
		return Facets{}, crerr.Newf("unexpected cached facets type %T", out)
	}
	return facets, nil
}
