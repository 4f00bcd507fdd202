package movie

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/database/schema"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListMovies(ctx context.Context, f Filter, limit, offset int) ([]*Movie, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.RefMovie.ID, schema.RefMovie.Title, schema.RefMovie.Image,
		schema.RefMovie.ScoreSum, schema.RefMovie.ScoreCount,
		schema.RefMovie.CreatedAt, schema.RefMovie.UpdatedAt,
		schema.RefMovie.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.RefMovie.Table)

	args := []any{}
	countArgs := []any{}

	if f.Title != "" {
		searchTerm := "%" + f.Title + "%"
		query += fmt.Sprintf(` WHERE %s ILIKE $1`, schema.RefMovie.Title)
		countQuery += fmt.Sprintf(` WHERE %s ILIKE $1`, schema.RefMovie.Title)
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	// Stable insertion order: ids are bigserial and never reused.
	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.RefMovie.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_movies")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_movies")
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		m := &Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Image, &m.ScoreSum, &m.Count, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_movie")
		}
		m.RecomputeScore()
		movies = append(movies, m)
	}

	return movies, total, nil
}

func (repository *PostgresRepository) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.RefMovie.ID, schema.RefMovie.Title, schema.RefMovie.Image,
		schema.RefMovie.ScoreSum, schema.RefMovie.ScoreCount,
		schema.RefMovie.CreatedAt, schema.RefMovie.UpdatedAt,
		schema.RefMovie.Table, schema.RefMovie.ID,
	)
	m := &Movie{}

	err := repository.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.Image, &m.ScoreSum, &m.Count, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_movie")
	}

	m.RecomputeScore()
	return m, nil
}

func (repository *PostgresRepository) CreateMovie(ctx context.Context, m *Movie) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, 0, 0, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.RefMovie.Table, schema.RefMovie.Title, schema.RefMovie.Image,
		schema.RefMovie.ScoreSum, schema.RefMovie.ScoreCount,
		schema.RefMovie.CreatedAt, schema.RefMovie.UpdatedAt,
		schema.RefMovie.ID, schema.RefMovie.CreatedAt, schema.RefMovie.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, m.Title, m.Image).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return dberr.Wrap(err, "create_movie")
}
