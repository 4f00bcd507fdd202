package score

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipeam10/dsmovie-restassured/internal/catalog/movie"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/database/schema"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetSubmission(ctx context.Context, movieID int64, username string) (*Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.RefScore.MovieID, schema.RefScore.Username, schema.RefScore.Value,
		schema.RefScore.CreatedAt, schema.RefScore.UpdatedAt,
		schema.RefScore.Table,
		schema.RefScore.MovieID, schema.RefScore.Username,
	)

	var sub Submission
	err := repository.db.QueryRow(ctx, query, movieID, username).Scan(
		&sub.MovieID, &sub.Username, &sub.Value, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_submission")
	}
	return &sub, nil
}

// Save upserts the submission row and writes the movie's new aggregates in a
// single transaction, so a reader never observes the two out of step.
func (repository *PostgresRepository) Save(ctx context.Context, sub *Submission, scoreSum float64, scoreCount int) (*movie.Movie, error) {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "save_score_begin")
	}
	defer tx.Rollback(ctx)

	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		schema.RefScore.Table,
		schema.RefScore.MovieID, schema.RefScore.Username, schema.RefScore.Value,
		schema.RefScore.CreatedAt, schema.RefScore.UpdatedAt,
		schema.RefScore.MovieID, schema.RefScore.Username,
		schema.RefScore.Value, schema.RefScore.Value,
		schema.RefScore.UpdatedAt, schema.RefScore.UpdatedAt,
	)
	if _, err := tx.Exec(ctx, upsert, sub.MovieID, sub.Username, sub.Value, sub.UpdatedAt); err != nil {
		return nil, dberr.Wrap(err, "save_score_upsert")
	}

	update := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3
		RETURNING %s, %s, %s, %s, %s, %s, %s
	`,
		schema.RefMovie.Table,
		schema.RefMovie.ScoreSum, schema.RefMovie.ScoreCount, schema.RefMovie.UpdatedAt,
		schema.RefMovie.ID,
		schema.RefMovie.ID, schema.RefMovie.Title, schema.RefMovie.Image,
		schema.RefMovie.ScoreSum, schema.RefMovie.ScoreCount,
		schema.RefMovie.CreatedAt, schema.RefMovie.UpdatedAt,
	)

	var m movie.Movie
	err = tx.QueryRow(ctx, update, scoreSum, scoreCount, sub.MovieID).Scan(
		&m.ID, &m.Title, &m.Image, &m.ScoreSum, &m.Count, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "save_score_aggregate")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "save_score_commit")
	}

	m.RecomputeScore()
	return &m, nil
}
