package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/soccerlens/scout/internal/domain/player"
	"github.com/soccerlens/scout/internal/platform/logging"
	"github.com/soccerlens/scout/internal/platform/querybuilder"
)

// PlayerService covers the one-shot reads: a single listing, a player card
// and a similarity ranking. The interactive flow lives in SearchOrchestrator.
type PlayerService struct {
	repo     player.Repository
	validate *validator.Validate
	logger   *logging.Logger
}

func NewPlayerService(repo player.Repository, validate *validator.Validate, logger *logging.Logger) *PlayerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{repo: repo, validate: validate, logger: logger}
}

func (s *PlayerService) List(ctx context.Context, q querybuilder.Query) (player.Page, error) {
	ctx, span := startSpan(ctx, "player.list")
	defer span.End()

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if err := s.validate.Struct(q); err != nil {
		return player.Page{}, crerr.Mark(err, ErrInvalidInput)
	}

	page, err := s.repo.ListPlayers(ctx, q)
	if err != nil {
		return player.Page{}, mapBackendError(err)
	}
	return page, nil
}

func (s *PlayerService) Detail(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startSpan(ctx, "player.detail")
	defer span.End()

	if id <= 0 {
		return player.Player{}, crerr.Mark(crerr.Newf("player id must be greater than zero, got %d", id), ErrInvalidInput)
	}

	out, err := s.repo.GetPlayer(ctx, id)
	if err != nil {
		return player.Player{}, mapBackendError(err)
	}
	return out, nil
}

type similarInput struct {
	ID     int64  `validate:"gt=0"`
	Method string `validate:"omitempty,oneof=statistical nlp hybrid"`
	Limit  int    `validate:"gte=0,lte=20"`
}

func (s *PlayerService) Similar(ctx context.Context, id int64, method string, limit int) (player.SimilarResult, error) {
	ctx, span := startSpan(ctx, "player.similar")
	defer span.End()

	if err := s.validate.Struct(similarInput{ID: id, Method: method, Limit: limit}); err != nil {
		return player.SimilarResult{}, crerr.Mark(err, ErrInvalidInput)
	}

	out, err := s.repo.SimilarPlayers(ctx, id, method, limit)
	if err != nil {
		return player.SimilarResult{}, mapBackendError(err)
	}
	return out, nil
}
