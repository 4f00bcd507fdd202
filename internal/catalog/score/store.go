package score

import (
	"context"

	"github.com/felipeam10/dsmovie-restassured/internal/catalog/movie"
)

// MovieStore is the slice of the movie repository this package needs to
// resolve submission targets.
type MovieStore interface {
	GetMovie(ctx context.Context, id int64) (*movie.Movie, error)
}

// Repository persists submissions together with the movie aggregates they
// produce.
type Repository interface {
	// GetSubmission returns the identity's current submission for the movie,
	// or dberr.ErrNotFound when none exists.
	GetSubmission(ctx context.Context, movieID int64, username string) (*Submission, error)

	// Save writes the submission and the movie's new aggregate values in a
	// single atomic step, returning the movie as readers will now see it.
	Save(ctx context.Context, sub *Submission, scoreSum float64, scoreCount int) (*movie.Movie, error)
}
