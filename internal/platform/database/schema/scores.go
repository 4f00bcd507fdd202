package schema

// ScoreTable represents the 'scores' table, keyed by (movie_id, username)
type ScoreTable struct {
	Table     string
	MovieID   string
	Username  string
	Value     string
	CreatedAt string
	UpdatedAt string
}

// RefScore is the schema definition for scores
var RefScore = ScoreTable{
	Table:     "scores",
	MovieID:   "movie_id",
	Username:  "username",
	Value:     "value",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
