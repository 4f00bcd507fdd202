package movie

import (
	"context"
	"sync"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
	"github.com/felipeam10/dsmovie-restassured/pkg/textnorm"
)

// MemoryRepository is an in-memory [Repository] used by tests and local
// development. It mirrors the Postgres semantics: stable id order, never-reused
// ids, fold-insensitive title filtering.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	movies map[int64]*Movie
	order  []int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		movies: make(map[int64]*Movie),
	}
}

func (repository *MemoryRepository) ListMovies(ctx context.Context, f Filter, limit, offset int) ([]*Movie, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	var matched []*Movie
	for _, id := range repository.order {
		m := repository.movies[id]
		if textnorm.Contains(m.Title, f.Title) {
			matched = append(matched, m)
		}
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]*Movie, 0, end-offset)
	for _, m := range matched[offset:end] {
		page = append(page, copyMovie(m))
	}
	return page, total, nil
}

func (repository *MemoryRepository) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	m, ok := repository.movies[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return copyMovie(m), nil
}

func (repository *MemoryRepository) CreateMovie(ctx context.Context, m *Movie) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	m.ID = repository.nextID
	repository.nextID++

	repository.movies[m.ID] = copyMovie(m)
	repository.order = append(repository.order, m.ID)
	return nil
}

// PutMovie replaces a stored movie's aggregate state. Used by the score
// repository sharing this catalog.
func (repository *MemoryRepository) PutMovie(m *Movie) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.movies[m.ID]; !ok {
		return dberr.ErrNotFound
	}
	repository.movies[m.ID] = copyMovie(m)
	return nil
}

// copyMovie returns a defensive copy so callers never alias internal state.
// Readers concurrent with a submission observe either the pre- or post-update
// aggregate, never a torn pair.
func copyMovie(m *Movie) *Movie {
	clone := *m
	clone.RecomputeScore()
	return &clone
}
