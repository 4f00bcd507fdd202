package schema

// MovieTable represents the 'movies' table
type MovieTable struct {
	Table      string
	ID         string
	Title      string
	Image      string
	ScoreSum   string
	ScoreCount string
	CreatedAt  string
	UpdatedAt  string
}

// RefMovie is the schema definition for movies
var RefMovie = MovieTable{
	Table:      "movies",
	ID:         "id",
	Title:      "title",
	Image:      "image",
	ScoreSum:   "score_sum",
	ScoreCount: "score_count",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}
