package usecase

import (
	"context"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/soccerlens/scout/external/soccerlens"
	"github.com/soccerlens/scout/internal/domain/player"
	"github.com/soccerlens/scout/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

type leaderboardRepo struct {
	fakeRepo
	boards map[string]player.Leaderboard
	errs   map[string]error
}

func (r *leaderboardRepo) Leaderboard(_ context.Context, stat string, _ int) (player.Leaderboard, error) {
	if err, ok := r.errs[stat]; ok {
		return player.Leaderboard{}, err
	}
	return r.boards[stat], nil
}

func TestCollectFansOutPerStat(t *testing.T) {
	t.Parallel()

	repo := &leaderboardRepo{
		boards: map[string]player.Leaderboard{
			"goals":   {Stat: "goals", Players: []player.Player{{Name: "Harry Kane"}}},
			"assists": {Stat: "assists", Players: []player.Player{{Name: "Kevin De Bruyne"}}},
		},
	}
	svc := NewLeaderboardService(repo, 2, logging.NewNop())

	boards, err := svc.Collect(context.Background(), []string{"goals", "assists"}, 10)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	require.Equal(t, "goals", boards[0].Stat)
	require.Equal(t, "assists", boards[1].Stat)
}

func TestCollectToleratesPartialFailure(t *testing.T) {
	t.Parallel()

	repo := &leaderboardRepo{
		boards: map[string]player.Leaderboard{
			"goals": {Stat: "goals"},
		},
		errs: map[string]error{
			"nonsense": crerr.Mark(crerr.New("unknown stat"), soccerlens.ErrServer),
		},
	}
	svc := NewLeaderboardService(repo, 2, logging.NewNop())

	boards, err := svc.Collect(context.Background(), []string{"goals", "nonsense"}, 10)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, "goals", boards[0].Stat)
}

func TestCollectFailsWhenEverythingFails(t *testing.T) {
	t.Parallel()

	repo := &leaderboardRepo{
		errs: map[string]error{
			"goals": crerr.Mark(crerr.New("dial refused"), soccerlens.ErrNetwork),
		},
	}
	svc := NewLeaderboardService(repo, 2, logging.NewNop())

	_, err := svc.Collect(context.Background(), []string{"goals"}, 10)
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestCollectRequiresStats(t *testing.T) {
	t.Parallel()

	svc := NewLeaderboardService(&leaderboardRepo{}, 2, logging.NewNop())
	_, err := svc.Collect(context.Background(), nil, 10)
	require.ErrorIs(t, err, ErrInvalidInput)
}
