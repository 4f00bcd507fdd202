package score_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipeam10/dsmovie-restassured/internal/catalog/movie"
	"github.com/felipeam10/dsmovie-restassured/internal/catalog/score"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/metrics"
)

const testMaxScore = 5.0

func newTestService(t *testing.T) (*score.Service, *movie.MemoryRepository) {
	t.Helper()

	movies := movie.NewMemoryRepository()
	repo := score.NewMemoryRepository(movies)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return score.NewService(movies, repo, testMaxScore, logger, metrics.NewCollector(nil)), movies
}

func seedMovie(t *testing.T, movies *movie.MemoryRepository, title string) *movie.Movie {
	t.Helper()

	m := &movie.Movie{Title: title, Image: "https://images.example.com/" + title + ".jpg"}
	require.NoError(t, movies.CreateMovie(context.Background(), m))
	return m
}

func intPtr(v int64) *int64       { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestSubmit_FirstSubmission(t *testing.T) {
	service, movies := newTestService(t)
	m := seedMovie(t, movies, "The Witcher")

	updated, err := service.Submit(context.Background(), "alice", score.SubmitInput{
		MovieID: intPtr(m.ID),
		Value:   floatPtr(4),
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, updated.Score)
	assert.Equal(t, 1, updated.Count)
}

func TestSubmit_ReplaceOnResubmit(t *testing.T) {
	service, movies := newTestService(t)
	m := seedMovie(t, movies, "The Witcher")
	ctx := context.Background()

	_, err := service.Submit(ctx, "alice", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(4)})
	require.NoError(t, err)

	// The second submission supersedes the first: the count must not grow
	// and the aggregate must reflect only the latest value.
	updated, err := service.Submit(ctx, "alice", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(2)})
	require.NoError(t, err)

	assert.Equal(t, 2.0, updated.Score)
	assert.Equal(t, 1, updated.Count)
}

func TestSubmit_EqualValueIsIdempotent(t *testing.T) {
	service, movies := newTestService(t)
	m := seedMovie(t, movies, "Inception")
	ctx := context.Background()

	first, err := service.Submit(ctx, "alice", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(3)})
	require.NoError(t, err)

	second, err := service.Submit(ctx, "alice", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(3)})
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Count, second.Count)
}

func TestSubmit_DistinctIdentitiesAverage(t *testing.T) {
	service, movies := newTestService(t)
	m := seedMovie(t, movies, "Dune")
	ctx := context.Background()

	for user, value := range map[string]float64{"alice": 5, "bob": 3, "carol": 4} {
		_, err := service.Submit(ctx, user, score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(value)})
		require.NoError(t, err)
	}

	updated, err := movies.GetMovie(ctx, m.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Count)
	assert.InDelta(t, 4.0, updated.Score, 1e-9)
}

func TestSubmit_MovieNotFound(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Submit(context.Background(), "alice", score.SubmitInput{
		MovieID: intPtr(999),
		Value:   floatPtr(4),
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
}

func TestSubmit_Validation(t *testing.T) {
	service, movies := newTestService(t)
	m := seedMovie(t, movies, "Alien")

	tests := []struct {
		name    string
		input   score.SubmitInput
		wantErr bool
	}{
		{"missing movieId", score.SubmitInput{Value: floatPtr(4)}, true},
		{"missing score", score.SubmitInput{MovieID: intPtr(m.ID)}, true},
		{"negative score", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(-1)}, true},
		{"score above maximum", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(testMaxScore + 0.1)}, true},
		{"lower bound", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(0)}, false},
		{"upper bound", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(testMaxScore)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), "alice", tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 422, appErr.HTTPStatus)
		})
	}
}

func TestSubmit_ZeroScoreCountsAsVote(t *testing.T) {
	service, movies := newTestService(t)
	m := seedMovie(t, movies, "Tenet")

	updated, err := service.Submit(context.Background(), "alice", score.SubmitInput{
		MovieID: intPtr(m.ID),
		Value:   floatPtr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, updated.Score)
	assert.Equal(t, 1, updated.Count)
}

func TestSubmit_ConcurrentSameMovie(t *testing.T) {
	service, movies := newTestService(t)
	m := seedMovie(t, movies, "Heat")
	ctx := context.Background()

	const voters = 50

	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			username := fmt.Sprintf("user-%02d", i)
			// Every identity votes twice; only the second value may count.
			_, err := service.Submit(ctx, username, score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(1)})
			assert.NoError(t, err)
			_, err = service.Submit(ctx, username, score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(3)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	updated, err := movies.GetMovie(ctx, m.ID)
	require.NoError(t, err)

	assert.Equal(t, voters, updated.Count)
	assert.InDelta(t, 3.0, updated.Score, 1e-9)
}

func TestSubmit_ConcurrentDistinctMovies(t *testing.T) {
	service, movies := newTestService(t)
	ctx := context.Background()

	const perMovie = 20
	first := seedMovie(t, movies, "Up")
	second := seedMovie(t, movies, "Coco")

	var wg sync.WaitGroup
	for i := 0; i < perMovie; i++ {
		for _, target := range []*movie.Movie{first, second} {
			wg.Add(1)
			go func(i int, target *movie.Movie) {
				defer wg.Done()

				username := fmt.Sprintf("user-%02d", i)
				_, err := service.Submit(ctx, username, score.SubmitInput{MovieID: intPtr(target.ID), Value: floatPtr(4)})
				assert.NoError(t, err)
			}(i, target)
		}
	}
	wg.Wait()

	for _, target := range []*movie.Movie{first, second} {
		updated, err := movies.GetMovie(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, perMovie, updated.Count)
		assert.InDelta(t, 4.0, updated.Score, 1e-9)
	}
}

func TestGetOwn(t *testing.T) {
	service, movies := newTestService(t)
	m := seedMovie(t, movies, "Arrival")
	ctx := context.Background()

	_, err := service.Submit(ctx, "alice", score.SubmitInput{MovieID: intPtr(m.ID), Value: floatPtr(4.5)})
	require.NoError(t, err)

	sub, err := service.GetOwn(ctx, "alice", m.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, sub.Value)
	assert.Equal(t, "alice", sub.Username)

	// Someone who never voted has nothing to fetch.
	_, err = service.GetOwn(ctx, "bob", m.ID)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)

	// Unknown movie wins over unknown submission.
	_, err = service.GetOwn(ctx, "alice", 999)
	require.Error(t, err)
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
}
