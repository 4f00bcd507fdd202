package movie

import "time"

// Movie represents one catalog entry together with its crowd-sourced
// aggregate score.
//
// # Rules
//   - ID is assigned at creation and never reused.
//   - ScoreSum and Count are the only stored aggregate state; Score is
//     always recomputed from them and never assigned independently.
type Movie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Score is the derived mean of all current submissions: ScoreSum/Count,
	// or 0.0 while Count is zero. Call [Movie.RecomputeScore] after any
	// aggregate mutation or load.
	Score float64 `json:"score"`
	Count int     `json:"count"`
	Image string  `json:"image"`

	ScoreSum  float64   `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// RecomputeScore refreshes the derived Score from ScoreSum and Count.
func (m *Movie) RecomputeScore() {
	if m.Count == 0 {
		m.Score = 0.0
		return
	}
	m.Score = m.ScoreSum / float64(m.Count)
}

// Filter holds the parameters for a paginated catalog search.
type Filter struct {
	Title string // Case-insensitive substring match against the title
}

// Global field names for validation
const (
	FieldTitle = "title"
	FieldImage = "image"
)

// MinTitleLen is the minimum accepted title length in runes.
const MinTitleLen = 3

// MaxTitleLen bounds titles to keep list rendering sane.
const MaxTitleLen = 255
