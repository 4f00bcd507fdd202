// Package score implements crowd-sourced score aggregation for the movie
// catalog.
//
// Every identity holds at most one current submission per movie. Submitting
// again replaces that submission: the movie's running sum absorbs only the
// difference and the distinct-voter count stays unchanged, so repeated voting
// can never inflate the aggregate.
package score

import "time"

// Submission is one identity's current score value for one movie.
// It is superseded, not accumulated, on resubmission.
type Submission struct {
	MovieID   int64     `json:"movieId"`
	Username  string    `json:"username"`
	Value     float64   `json:"score"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// SubmitInput is the raw submission payload. Pointer fields distinguish
// "absent" from zero values: a missing movieId or score is a 422, not a
// submission of zero.
type SubmitInput struct {
	MovieID *int64
	Value   *float64
}

// Global field names for validation
const (
	FieldMovieID = "movieId"
	FieldScore   = "score"
)
