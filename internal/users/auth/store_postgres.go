package auth

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

func (repository *PostgresRepository) CreateAccount(ctx context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`,
		schema.RefAccount.Table,
		schema.RefAccount.ID, schema.RefAccount.Username, schema.RefAccount.Email,
		schema.RefAccount.Password, schema.RefAccount.Role,
		schema.RefAccount.CreatedAt, schema.RefAccount.UpdatedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		account.ID, account.Username, account.Email,
		account.PasswordHash, account.Role, account.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_account")
	}
	return nil
}

func (repository *PostgresRepository) GetAccountByLogin(ctx context.Context, login string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 OR %s = $1
	`,
		schema.RefAccount.ID, schema.RefAccount.Username, schema.RefAccount.Email,
		schema.RefAccount.Password, schema.RefAccount.Role,
		schema.RefAccount.CreatedAt, schema.RefAccount.UpdatedAt,
		schema.RefAccount.Table,
		schema.RefAccount.Username, schema.RefAccount.Email,
	)
	return repository.scanAccount(ctx, query, login)
}

func (repository *PostgresRepository) GetAccountByID(ctx context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.RefAccount.ID, schema.RefAccount.Username, schema.RefAccount.Email,
		schema.RefAccount.Password, schema.RefAccount.Role,
		schema.RefAccount.CreatedAt, schema.RefAccount.UpdatedAt,
		schema.RefAccount.Table,
		schema.RefAccount.ID,
	)
	return repository.scanAccount(ctx, query, id)
}

func (repository *PostgresRepository) scanAccount(ctx context.Context, query string, arg any) (*Account, error) {
	var account Account
	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PasswordHash, &account.Role,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_account")
	}
	return &account, nil
}
