package score

import (
	"context"
	"sync"
	"time"

	"github.com/felipeam10/dsmovie-restassured/internal/catalog/movie"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
)

type memoryKey struct {
	movieID  int64
	username string
}

// MemoryRepository is an in-memory [Repository] backed by the same
// [movie.MemoryRepository] the catalog reads from, so a saved aggregate is
// immediately visible to listing and lookup.
type MemoryRepository struct {
	mu          sync.RWMutex
	movies      *movie.MemoryRepository
	submissions map[memoryKey]*Submission
}

func NewMemoryRepository(movies *movie.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		movies:      movies,
		submissions: make(map[memoryKey]*Submission),
	}
}

func (repository *MemoryRepository) GetSubmission(ctx context.Context, movieID int64, username string) (*Submission, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	sub, ok := repository.submissions[memoryKey{movieID, username}]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *sub
	return &clone, nil
}

func (repository *MemoryRepository) Save(ctx context.Context, sub *Submission, scoreSum float64, scoreCount int) (*movie.Movie, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	target, err := repository.movies.GetMovie(ctx, sub.MovieID)
	if err != nil {
		return nil, err
	}

	target.ScoreSum = scoreSum
	target.Count = scoreCount
	target.UpdatedAt = time.Now().UTC()
	target.RecomputeScore()

	if err := repository.movies.PutMovie(target); err != nil {
		return nil, err
	}

	clone := *sub
	repository.submissions[memoryKey{sub.MovieID, sub.Username}] = &clone
	return target, nil
}
