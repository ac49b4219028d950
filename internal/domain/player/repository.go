package player

import (
	"context"

	"github.com/soccerlens/scout/internal/platform/querybuilder"
)

// Repository is the read-side contract the backend client fulfills. There is
// no write side: player statistics are authored upstream.
type Repository interface {
	ListPlayers(ctx context.Context, q querybuilder.Query) (Page, error)
	GetPlayer(ctx context.Context, id int64) (Player, error)
	SimilarPlayers(ctx context.Context, id int64, method string, limit int) (SimilarResult, error)
	Leaderboard(ctx context.Context, stat string, limit int) (Leaderboard, error)
}
