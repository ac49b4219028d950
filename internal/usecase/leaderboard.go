package usecase

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/soccerlens/scout/internal/domain/player"
	"github.com/soccerlens/scout/internal/platform/logging"
)

// LeaderboardService fetches backend-ranked top-N lists. Collect fans out one
// request per statistic over a bounded worker pool.
type LeaderboardService struct {
	repo    player.Repository
	workers int
	logger  *logging.Logger
}

func NewLeaderboardService(repo player.Repository, workers int, logger *logging.Logger) *LeaderboardService {
	if workers < 1 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{repo: repo, workers: workers, logger: logger}
}

func (s *LeaderboardService) Top(ctx context.Context, stat string, limit int) (player.Leaderboard, error) {
	ctx, span := startSpan(ctx, "leaderboard.top")
	defer span.End()

	board, err := s.repo.Leaderboard(ctx, stat, limit)
	if err != nil {
		return player.Leaderboard{}, mapBackendError(err)
	}
	return board, nil
}

// Collect fetches one leaderboard per statistic. Per-stat failures are logged
// and skipped; the call only errors when every statistic failed, so a single
// bad stat key does not blank the whole comparison view.
func (s *LeaderboardService) Collect(ctx context.Context, stats []string, limit int) ([]player.Leaderboard, error) {
	if len(stats) == 0 {
		return nil, crerr.Mark(crerr.New("at least one statistic is required"), ErrInvalidInput)
	}

	ctx, span := startSpan(ctx, "leaderboard.collect")
	defer span.End()

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, crerr.Wrap(err, "create leaderboard worker pool")
	}
	defer workerPool.Release()

	boards := make([]player.Leaderboard, len(stats))
	errs := make([]error, len(stats))

	var wg sync.WaitGroup
	for i, stat := range stats {
		i, stat := i, stat
		wg.Add(1)
		if submitErr := workerPool.Submit(func() {
			defer wg.Done()
			board, fetchErr := s.repo.Leaderboard(ctx, stat, limit)
			if fetchErr != nil {
				errs[i] = mapBackendError(fetchErr)
				return
			}
			boards[i] = board
		}); submitErr != nil {
			wg.Done()
			errs[i] = crerr.Wrapf(submitErr, "submit leaderboard fetch for %q", stat)
		}
	}
	wg.Wait()

	out := make([]player.Leaderboard, 0, len(stats))
	var firstErr error
	for i, stat := range stats {
		if errs[i] != nil {
			s.logger.WarnContext(ctx, "leaderboard fetch failed", "stat", stat, "error", errs[i])
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		out = append(out, boards[i])
	}
	if len(out) == 0 {
		return nil, firstErr
	}
	return out, nil
}
