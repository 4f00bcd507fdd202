package auth_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/sec"
	"github.com/felipeam10/dsmovie-restassured/internal/users/auth"
)

// memoryAccounts is an in-memory AccountRepository with the same uniqueness
// behavior as the Postgres table.
type memoryAccounts struct {
	mu       sync.Mutex
	accounts map[string]*auth.Account
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{accounts: make(map[string]*auth.Account)}
}

func (r *memoryAccounts) CreateAccount(ctx context.Context, account *auth.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	clone := *account
	r.accounts[account.ID] = &clone
	return nil
}

func (r *memoryAccounts) GetAccountByLogin(ctx context.Context, login string) (*auth.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Username == login || account.Email == login {
			clone := *account
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *memoryAccounts) GetAccountByID(ctx context.Context, id string) (*auth.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *account
	return &clone, nil
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]*auth.Session)}
}

func (s *memorySessions) PutSession(ctx context.Context, tokenHash string, session *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[tokenHash] = &clone
	return nil
}

func (s *memorySessions) GetSession(ctx context.Context, tokenHash string) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[tokenHash]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *memorySessions) DeleteSession(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}

// stubSigner issues predictable access tokens without touching RSA keys.
type stubSigner struct{ issued int }

func (s *stubSigner) GenerateAccessToken(userID, username, role string, ttl time.Duration) (string, error) {
	s.issued++
	return fmt.Sprintf("access-%s-%d", username, s.issued), nil
}

func newTestService(t *testing.T) (*auth.Service, *memoryAccounts, *memorySessions) {
	t.Helper()

	accounts := newMemoryAccounts()
	sessions := newMemorySessions()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return auth.NewService(accounts, sessions, &stubSigner{}, logger), accounts, sessions
}

func registerAccount(t *testing.T, service *auth.Service, username string) *auth.Account {
	t.Helper()

	account, err := service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return account
}

func TestRegister(t *testing.T) {
	service, _, _ := newTestService(t)

	account := registerAccount(t, service, "alice")

	// Self-service accounts always come out as clients.
	assert.Equal(t, sec.RoleClient, account.Role)
	assert.NotEmpty(t, account.ID)
	assert.NotEqual(t, "correct-horse", account.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"short username", auth.RegisterInput{Username: "al", Email: "al@example.com", Password: "correct-horse"}},
		{"bad email", auth.RegisterInput{Username: "alice", Email: "not-an-email", Password: "correct-horse"}},
		{"short password", auth.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "short"}},
		{"all empty", auth.RegisterInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			_, err := service.Register(context.Background(), tt.input)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 422, appErr.HTTPStatus)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service, _, _ := newTestService(t)
	registerAccount(t, service, "alice")

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct-horse",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestLogin(t *testing.T) {
	service, _, sessions := newTestService(t)
	registerAccount(t, service, "alice")

	// Username and email both resolve the account.
	for _, login := range []string{"alice", "alice@example.com"} {
		account, pair, err := service.Login(context.Background(), login, "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Username)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	}

	assert.Len(t, sessions.sessions, 2)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	service, _, _ := newTestService(t)
	registerAccount(t, service, "alice")

	tests := []struct {
		name     string
		login    string
		password string
	}{
		{"wrong password", "alice", "wrong-password"},
		{"unknown account", "nobody", "correct-horse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Login(context.Background(), tt.login, tt.password)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 401, appErr.HTTPStatus)
		})
	}
}

func TestRefreshSession_RotatesToken(t *testing.T) {
	service, _, _ := newTestService(t)
	registerAccount(t, service, "alice")

	_, pair, err := service.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The consumed token must not work a second time.
	_, err = service.RefreshSession(context.Background(), pair.RefreshToken)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.HTTPStatus)

	// The rotated token does.
	_, err = service.RefreshSession(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestLogout_Idempotent(t *testing.T) {
	service, _, sessions := newTestService(t)
	registerAccount(t, service, "alice")

	_, pair, err := service.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), pair.RefreshToken))
	assert.Empty(t, sessions.sessions)

	// Logging out twice, or with garbage, is still fine.
	assert.NoError(t, service.Logout(context.Background(), pair.RefreshToken))
	assert.NoError(t, service.Logout(context.Background(), ""))

	_, err = service.RefreshSession(context.Background(), pair.RefreshToken)
	require.Error(t, err)
}
