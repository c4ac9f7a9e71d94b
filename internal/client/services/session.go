// Package services contains application services for the EmployEra client.
// This file defines the Session Store: the only reader and writer of the
// persisted session (access token, refresh token, cached user) and the
// only caller of the identity endpoints.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/employera/internal/client/client"
	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/dmitrijs2005/employera/internal/client/repositories/kv"
	"github.com/dmitrijs2005/employera/internal/client/validation"
	"github.com/dmitrijs2005/employera/internal/dbx"
	"github.com/dmitrijs2005/employera/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned by operations that need a persisted access token
// when there is none.
var ErrNoSession = errors.New("no session")

var sessionKeys = []string{kv.KeyAccessToken, kv.KeyRefreshToken, kv.KeyUser}

// SessionStore owns the persisted session. The three session keys are
// always written and removed in a single transaction.
type SessionStore struct {
	client   client.Client
	db       *sql.DB
	validate *validation.Validator
	log      logging.Logger
}

// NewSessionStore binds a store to the API client and the local database.
func NewSessionStore(c client.Client, db *sql.DB, log logging.Logger) *SessionStore {
	return &SessionStore{
		client:   c,
		db:       db,
		validate: validation.New(),
		log:      log.With("component", "session_store"),
	}
}

func (s *SessionStore) repo() kv.Repository {
	return kv.NewSQLiteRepository(s.db)
}

// Register creates the account and persists the returned session. Nothing
// is persisted when validation or the API call fails.
func (s *SessionStore) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, *resp.Tokens, resp.User); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "registered", "email", resp.User.Email, "account_type", resp.User.AccountType)
	return resp.User, nil
}

// Login exchanges credentials for a session and persists it. Rejected
// credentials unwrap to client.ErrInvalidCredentials.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*models.User, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, *resp.Tokens, resp.User); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "logged in", "email", resp.User.Email, "account_type", resp.User.AccountType)
	return resp.User, nil
}

// Logout asks the API to revoke the refresh token and then removes the
// session locally whatever the API said. It never fails the caller.
func (s *SessionStore) Logout(ctx context.Context) {
	repo := s.repo()

	access, err := repo.Get(ctx, kv.KeyAccessToken)
	if err != nil {
		s.log.Warn(ctx, "logout: read access token", "error", err)
	}
	refresh, err := repo.Get(ctx, kv.KeyRefreshToken)
	if err != nil {
		s.log.Warn(ctx, "logout: read refresh token", "error", err)
	}

	if len(refresh) > 0 {
		if err := s.client.Logout(ctx, string(access), string(refresh)); err != nil {
			s.log.Warn(ctx, "logout: revoke refresh token", "error", err)
		}
	}

	// The purge must happen even if ctx is already done.
	if err := s.clearSession(context.WithoutCancel(ctx)); err != nil {
		s.log.Error(ctx, "logout: clear session", "error", err)
	}
}

// VerifySession asks the API whether the persisted access token is still
// accepted. Any failure means the session is invalid; the caller decides
// what to do about it. On success the cached user is refreshed.
func (s *SessionStore) VerifySession(ctx context.Context) (*models.User, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.client.VerifyToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}

	if err := s.cacheUser(ctx, s.repo(), user); err != nil {
		s.log.Warn(ctx, "verify: refresh cached user", "error", err)
	}
	return user, nil
}

// UpdateProfile sends a partial update and overwrites the cached user on
// success. Tokens are not touched.
func (s *SessionStore) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.client.UpdateProfile(ctx, token, upd)
	if err != nil {
		return nil, err
	}

	if err := s.cacheUser(ctx, s.repo(), user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword changes the password of the signed-in user. The session
// stays as it is.
func (s *SessionStore) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}
	token, err := s.accessToken(ctx)
	if err != nil {
		return err
	}
	return s.client.ChangePassword(ctx, token, req)
}

// CheckEmail reports whether an account already uses email.
func (s *SessionStore) CheckEmail(ctx context.Context, email string) (bool, error) {
	return s.client.CheckEmail(ctx, email)
}

// IsAuthenticated reports whether an access token is stored. It says
// nothing about whether the API still accepts it.
func (s *SessionStore) IsAuthenticated(ctx context.Context) bool {
	v, err := s.repo().Get(ctx, kv.KeyAccessToken)
	if err != nil {
		s.log.Warn(ctx, "read access token", "error", err)
		return false
	}
	return len(v) > 0
}

// CachedUser returns the last persisted user, or nil when there is none or
// it cannot be decoded.
func (s *SessionStore) CachedUser(ctx context.Context) *models.User {
	raw, err := s.repo().Get(ctx, kv.KeyUser)
	if err != nil {
		s.log.Warn(ctx, "read cached user", "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn(ctx, "decode cached user", "error", err)
		return nil
	}
	return &u
}

// AccessTokenExpiry reads the exp claim of the stored access token without
// verifying its signature. It is informational only.
func (s *SessionStore) AccessTokenExpiry(ctx context.Context) (time.Time, bool) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Repair removes a partially persisted session (one or two of the three
// keys present), which can only be left behind by an interrupted write from
// an older client. It reports whether anything was removed.
func (s *SessionStore) Repair(ctx context.Context) (bool, error) {
	all, err := s.repo().List(ctx)
	if err != nil {
		return false, err
	}

	present := 0
	for _, k := range sessionKeys {
		if len(all[k]) > 0 {
			present++
		}
	}
	if present == 0 || present == len(sessionKeys) {
		return false, nil
	}

	s.log.Warn(ctx, "partial session found, purging", "present", present)
	if err := s.clearSession(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SessionStore) accessToken(ctx context.Context) (string, error) {
	v, err := s.repo().Get(ctx, kv.KeyAccessToken)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return "", ErrNoSession
	}
	return string(v), nil
}

func (s *SessionStore) cacheUser(ctx context.Context, repo kv.Repository, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return repo.Set(ctx, kv.KeyUser, raw)
}

// saveSession writes tokens and user in one transaction.
func (s *SessionStore) saveSession(ctx context.Context, tokens models.Tokens, user *models.User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, kv.KeyAccessToken, []byte(tokens.Access)); err != nil {
			return err
		}
		if err := repo.Set(ctx, kv.KeyRefreshToken, []byte(tokens.Refresh)); err != nil {
			return err
		}
		return s.cacheUser(ctx, repo, user)
	})
}

// clearSession removes the three session keys in one transaction. Other
// keys (the theme preference) survive.
func (s *SessionStore) clearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).Delete(ctx, sessionKeys...)
	})
}
