package score

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felipeam10/dsmovie-restassured/internal/catalog/movie"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/metrics"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/validate"
)

type Service struct {
	movies    MovieStore
	repo      Repository
	locks     *keyedMutex
	maxScore  float64
	logger    *slog.Logger
	collector *metrics.Collector
}

func NewService(movies MovieStore, repo Repository, maxScore float64, logger *slog.Logger, collector *metrics.Collector) *Service {
	return &Service{
		movies:    movies,
		repo:      repo,
		locks:     newKeyedMutex(),
		maxScore:  maxScore,
		logger:    logger,
		collector: collector,
	}
}

// Submit records the identity's score for a movie and returns the movie that
// now carries the updated aggregate.
//
// A first submission from an identity grows both sum and count. A repeated
// submission from the same identity replaces the previous value: the sum
// absorbs only the difference and the count stays put, so the operation is
// idempotent for equal values.
func (service *Service) Submit(ctx context.Context, username string, input SubmitInput) (*movie.Movie, error) {
	// ── 1. Validate the payload before touching storage ──────────────────
	validator := &validate.Validator{}
	validator.Custom(FieldMovieID, input.MovieID == nil, "This field is required").
		Custom(FieldScore, input.Value == nil, "This field is required")
	if input.Value != nil {
		validator.RangeFloat(FieldScore, *input.Value, 0, service.maxScore)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	movieID := *input.MovieID
	value := *input.Value

	// ── 2. Serialize per movie so concurrent aggregate math never races ──
	unlock := service.locks.Lock(movieID)
	defer unlock()

	target, err := service.movies.GetMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Movie")
		}
		return nil, err
	}

	// ── 3. Replace-or-add against the prior submission ───────────────────
	scoreSum := target.ScoreSum
	scoreCount := target.Count
	replaced := false

	prior, err := service.repo.GetSubmission(ctx, movieID, username)
	switch {
	case err == nil:
		scoreSum += value - prior.Value
		replaced = true
	case errors.Is(err, dberr.ErrNotFound):
		scoreSum += value
		scoreCount++
	default:
		return nil, err
	}

	now := time.Now().UTC()
	sub := &Submission{
		MovieID:   movieID,
		Username:  username,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if replaced {
		sub.CreatedAt = prior.CreatedAt
	}

	// ── 4. Persist submission and aggregate in one atomic step ───────────
	updated, err := service.repo.Save(ctx, sub, scoreSum, scoreCount)
	if err != nil {
		return nil, err
	}

	service.collector.RecordScoreSubmission(replaced)
	service.logger.Info("score_submitted",
		slog.Int64("movie_id", movieID),
		slog.String("username", username),
		slog.Float64("value", value),
		slog.Bool("replaced", replaced),
	)
	return updated, nil
}

// GetOwn returns the caller's current submission for the movie.
func (service *Service) GetOwn(ctx context.Context, username string, movieID int64) (*Submission, error) {
	if _, err := service.movies.GetMovie(ctx, movieID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Movie")
		}
		return nil, err
	}

	sub, err := service.repo.GetSubmission(ctx, movieID, username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Score")
		}
		return nil, err
	}
	return sub, nil
}
