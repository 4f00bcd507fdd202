package movie

import "context"

// Repository defines the keyed persistence contract for the movie catalog.
//
// Implementations return [dberr.ErrNotFound] (an apperr NOT_FOUND) when a
// referenced movie is absent.
type Repository interface {
	ListMovies(ctx context.Context, f Filter, limit, offset int) ([]*Movie, int, error)
	GetMovie(ctx context.Context, id int64) (*Movie, error)
	CreateMovie(ctx context.Context, m *Movie) error
}
