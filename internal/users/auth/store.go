package auth

import "context"

// AccountRepository persists accounts.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *Account) error

	// GetAccountByLogin resolves an account by username or email.
	GetAccountByLogin(ctx context.Context, login string) (*Account, error)

	GetAccountByID(ctx context.Context, id string) (*Account, error)
}

// SessionStore keeps refresh-token sessions, keyed by token hash,
// expiring on their own.
type SessionStore interface {
	PutSession(ctx context.Context, tokenHash string, session *Session) error
	GetSession(ctx context.Context, tokenHash string) (*Session, error)
	DeleteSession(ctx context.Context, tokenHash string) error
}
