package movie

import (
	"context"
	"errors"
	"log/slog"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/metrics"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/validate"
)

type Service struct {
	repo      Repository
	logger    *slog.Logger
	collector *metrics.Collector
}

func NewService(repo Repository, logger *slog.Logger, collector *metrics.Collector) *Service {
	return &Service{
		repo:      repo,
		logger:    logger,
		collector: collector,
	}
}

func (service *Service) ListMovies(ctx context.Context, filter Filter, limit, offset int) ([]*Movie, int, error) {
	return service.repo.ListMovies(ctx, filter, limit, offset)
}

func (service *Service) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	m, err := service.repo.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Movie")
		}
		return nil, err
	}
	return m, nil
}

// CreateMovie validates and persists a new catalog entry.
//
// The image is deliberately accepted as an opaque string. A brand-new movie
// starts with an empty aggregate: sum 0, count 0, derived score 0.0.
func (service *Service) CreateMovie(ctx context.Context, draft *Movie) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, draft.Title).
		MinLen(FieldTitle, draft.Title, MinTitleLen).
		MaxLen(FieldTitle, draft.Title, MaxTitleLen)

	if err := validator.Err(); err != nil {
		return err
	}

	draft.ScoreSum = 0
	draft.Count = 0
	draft.RecomputeScore()

	if err := service.repo.CreateMovie(ctx, draft); err != nil {
		return err
	}

	service.collector.RecordMovieCreated()
	service.logger.Info("movie_created",
		slog.Int64("movie_id", draft.ID),
		slog.String("title", draft.Title),
	)
	return nil
}
