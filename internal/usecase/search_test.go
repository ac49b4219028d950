package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/soccerlens/scout/external/soccerlens"
	"github.com/soccerlens/scout/internal/domain/player"
	"github.com/soccerlens/scout/internal/platform/logging"
	"github.com/soccerlens/scout/internal/platform/querybuilder"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRepo struct {
	mu      sync.Mutex
	calls   []querybuilder.Query
	respond func(ctx context.Context, q querybuilder.Query) (player.Page, error)
}

func (f *fakeRepo) ListPlayers(ctx context.Context, q querybuilder.Query) (player.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	if f.respond == nil {
		return player.Page{}, nil
	}
	return f.respond(ctx, q)
}

func (f *fakeRepo) GetPlayer(context.Context, int64) (player.Player, error) {
	return player.Player{}, nil
}

func (f *fakeRepo) SimilarPlayers(context.Context, int64, string, int) (player.SimilarResult, error) {
	return player.SimilarResult{}, nil
}

func (f *fakeRepo) Leaderboard(context.Context, string, int) (player.Leaderboard, error) {
	return player.Leaderboard{}, nil
}

func (f *fakeRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRepo) lastCall() querybuilder.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeProber struct{ reachable bool }

func (f fakeProber) Probe(context.Context) bool { return f.reachable }

func pageOf(names ...string) player.Page {
	items := make([]player.Player, len(names))
	for i, name := range names {
		items[i] = player.Player{ID: int64(i + 1), Name: name}
	}
	return player.Page{Items: items, TotalCount: len(items)}
}

func waitForPhase(t *testing.T, updates <-chan Update, want Phase) Update {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case update := <-updates:
			if update.Phase == want {
				return update
			}
		case <-deadline:
			t.Fatalf("timed out waiting for phase %q", want)
		}
	}
}

func newOrchestrator(repo player.Repository, prober ConnectivityProber, logger *logging.Logger) (*SearchOrchestrator, chan Update) {
	updates := make(chan Update, 64)
	o := NewSearchOrchestrator(SearchConfig{
		Players:  repo,
		Prober:   prober,
		Logger:   logger,
		PageSize: 20,
		OnUpdate: func(u Update) { updates <- u },
	})
	return o, updates
}

func TestStaleResponseIsSuppressed(t *testing.T) {
	t.Parallel()

	slowRelease := make(chan struct{})
	repo := &fakeRepo{
		// The slow default request ignores cancellation on purpose: the
		// sequence check alone must keep its late result off the screen.
		respond: func(_ context.Context, q querybuilder.Query) (player.Page, error) {
			if q.Text == "" {
				<-slowRelease
				return pageOf("Default Player"), nil
			}
			return pageOf("Harry Kane"), nil
		},
	}
	o, updates := newOrchestrator(repo, nil, logging.NewNop())
	ctx := context.Background()

	o.Refresh(ctx)
	waitForPhase(t, updates, PhaseDefaultLoading)

	o.SetText(ctx, "Kane")
	update := waitForPhase(t, updates, PhaseSearchLoaded)
	require.Equal(t, "Harry Kane", update.Snapshot.Players[0].Name)

	close(slowRelease)

	select {
	case late := <-updates:
		t.Fatalf("superseded response must not publish an update, got phase %q", late.Phase)
	case <-time.After(200 * time.Millisecond):
	}

	snap := o.Snapshot()
	require.Equal(t, StatusLoaded, snap.Status)
	require.Equal(t, "Harry Kane", snap.Players[0].Name)
	require.Equal(t, PhaseSearchLoaded, o.Phase())
}

func TestDeadZoneHoldsCurrentResults(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		respond: func(_ context.Context, q querybuilder.Query) (player.Page, error) {
			return pageOf("Harry Kane"), nil
		},
	}
	o, updates := newOrchestrator(repo, nil, logging.NewNop())
	ctx := context.Background()

	o.SetText(ctx, "Kane")
	waitForPhase(t, updates, PhaseSearchLoaded)
	fetched := repo.callCount()

	o.SetText(ctx, "Ka")
	o.SetText(ctx, "K")
	o.SetSort(ctx, "assists", "")
	o.SetFilters(ctx, querybuilder.Filters{querybuilder.FilterPosition: "FW"})

	select {
	case update := <-updates:
		t.Fatalf("dead zone input must not publish an update, got phase %q", update.Phase)
	case <-time.After(150 * time.Millisecond):
	}
	require.Equal(t, fetched, repo.callCount(), "dead zone input must not fetch")
	require.Equal(t, PhaseSearchLoaded, o.Phase())
	require.Equal(t, "Harry Kane", o.Snapshot().Players[0].Name)
}

func TestEmptyTextResetsToDefaultListing(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		respond: func(_ context.Context, q querybuilder.Query) (player.Page, error) {
			if q.Text == "" {
				return pageOf("Default One", "Default Two"), nil
			}
			return pageOf("Harry Kane"), nil
		},
	}
	o, updates := newOrchestrator(repo, nil, logging.NewNop())
	ctx := context.Background()

	o.SetText(ctx, "Kane")
	waitForPhase(t, updates, PhaseSearchLoaded)

	o.SetText(ctx, "")
	update := waitForPhase(t, updates, PhaseDefaultLoaded)
	require.Len(t, update.Snapshot.Players, 2)
	require.Empty(t, repo.lastCall().Text)
}

func TestUnreachableBackendSkipsInitialLoad(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	logger := logging.FromZap(zap.New(core))

	repo := &fakeRepo{}
	o, updates := newOrchestrator(repo, fakeProber{reachable: false}, logger)

	o.Start(context.Background())

	update := waitForPhase(t, updates, PhaseError)
	require.ErrorIs(t, update.Snapshot.Err, ErrDependencyUnavailable)
	require.Zero(t, repo.callCount(), "no fetch may be dispatched while unreachable")

	warns := observed.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1, "exactly one diagnostic expected")
}

func TestErrorKeepsLastGoodData(t *testing.T) {
	t.Parallel()

	var failing bool
	var mu sync.Mutex
	repo := &fakeRepo{
		respond: func(_ context.Context, q querybuilder.Query) (player.Page, error) {
			mu.Lock()
			defer mu.Unlock()
			if failing {
				return player.Page{}, crerr.Mark(crerr.New("dial refused"), soccerlens.ErrNetwork)
			}
			return pageOf("Harry Kane"), nil
		},
	}
	o, updates := newOrchestrator(repo, nil, logging.NewNop())
	ctx := context.Background()

	o.SetText(ctx, "Kane")
	waitForPhase(t, updates, PhaseSearchLoaded)

	mu.Lock()
	failing = true
	mu.Unlock()

	o.Refresh(ctx)
	update := waitForPhase(t, updates, PhaseError)
	require.ErrorIs(t, update.Snapshot.Err, ErrDependencyUnavailable)
	require.Equal(t, "Harry Kane", update.Snapshot.Players[0].Name, "last good data must survive the failure")
	require.Equal(t, StatusError, update.Snapshot.Status)
}

func TestSearchQueryCarriesConvention(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		respond: func(_ context.Context, q querybuilder.Query) (player.Page, error) {
			return pageOf("Harry Kane"), nil
		},
	}
	o, updates := newOrchestrator(repo, nil, logging.NewNop())
	ctx := context.Background()

	o.SetSort(ctx, "goals", "")
	waitForPhase(t, updates, PhaseDefaultLoaded)
	o.SetText(ctx, "Kan")
	waitForPhase(t, updates, PhaseSearchLoaded)

	q := repo.lastCall()
	require.Equal(t, "Kan", q.Text)
	require.Equal(t, "goals", q.SortKey)
	require.Equal(t, 1, q.Page)
	require.Equal(t, 20, q.PageSize)
	require.Equal(t,
		"page=1&page_size=20&search=Kan&sort_by=goals&sort_order=desc",
		querybuilder.FromQuery(q).Encode())
}
