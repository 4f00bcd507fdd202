package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/constants"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/sec"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/validate"
	"github.com/felipeam10/dsmovie-restassured/pkg/uuidv7"
)

// TokenSigner is the slice of [sec.TokenService] this service needs.
type TokenSigner interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

type Service struct {
	accounts AccountRepository
	sessions SessionStore
	signer   TokenSigner
	logger   *slog.Logger
}

func NewService(accounts AccountRepository, sessions SessionStore, signer TokenSigner, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		signer:   signer,
		logger:   logger,
	}
}

// RegisterInput carries the self-service signup payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account. Self-service signup always yields the
// client role; admin accounts are provisioned out of band.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Account, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLen).
		MaxLen(FieldUsername, input.Username, MaxUsernameLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLen).
		MaxLen(FieldPassword, input.Password, MaxPasswordLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now().UTC()
	account := &Account{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         sec.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.accounts.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	service.logger.Info("account_registered",
		slog.String("account_id", account.ID),
		slog.String("username", account.Username),
	)
	return account, nil
}

// Login verifies credentials against the stored hash and issues a token pair.
// The login field accepts either a username or an email address.
func (service *Service) Login(ctx context.Context, login, password string) (*Account, *TokenPair, error) {
	validator := &validate.Validator{}
	validator.Required(FieldLogin, login).Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	account, err := service.accounts.GetAccountByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			// Same error as a wrong password so the response does not
			// reveal whether the account exists.
			return nil, nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, nil, err
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, nil, apperr.Unauthorized("Invalid credentials")
	}

	pair, err := service.issueTokens(ctx, account)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("account_logged_in", slog.String("account_id", account.ID))
	return account, pair, nil
}

// RefreshSession trades a live refresh token for a fresh token pair. The
// presented token is consumed; a replay of it fails.
func (service *Service) RefreshSession(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, validate.RequiredError(FieldRefresh, "This field is required")
	}

	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessions.GetSession(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, err
	}

	// Rotation: invalidate before reissuing so the old token cannot race a
	// second refresh.
	if err := service.sessions.DeleteSession(ctx, tokenHash); err != nil {
		return nil, err
	}

	account, err := service.accounts.GetAccountByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, err
	}

	pair, err := service.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}

	service.logger.Info("session_refreshed", slog.String("account_id", account.ID))
	return pair, nil
}

// Logout discards the refresh session. Unknown tokens are a no-op so the
// operation is idempotent.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return service.sessions.DeleteSession(ctx, sec.HashToken(refreshToken))
}

func (service *Service) issueTokens(ctx context.Context, account *Account) (*TokenPair, error) {
	accessToken, err := service.signer.GenerateAccessToken(
		account.ID, account.Username, string(account.Role), constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	session := &Session{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      string(account.Role),
	}
	if err := service.sessions.PutSession(ctx, sec.HashToken(refreshToken), session); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
