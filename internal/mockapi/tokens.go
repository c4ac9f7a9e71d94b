package mockapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/employera/internal/mockapi/accounts"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

var errTokenInvalid = errors.New("token not valid")

type claims struct {
	jwt.RegisteredClaims
	UserID     int64  `json:"user_id"`
	TokenType  string `json:"token_type"`
	Generation int    `json:"gen"`
}

// tokenIssuer mints and checks HS256 token pairs and remembers
// blacklisted refresh tokens.
type tokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	blacklist  accounts.Blacklist
}

func newTokenIssuer(secret []byte, accessTTL, refreshTTL time.Duration, blacklist accounts.Blacklist) *tokenIssuer {
	return &tokenIssuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
		blacklist:  blacklist,
	}
}

func (t *tokenIssuer) pair(userID int64, gen int) (access, refresh string, err error) {
	access, err = t.mint(userID, gen, tokenAccess, t.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.mint(userID, gen, tokenRefresh, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *tokenIssuer) mint(userID int64, gen int, typ string, ttl time.Duration) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:     userID,
		TokenType:  typ,
		Generation: gen,
	})
	return token.SignedString(t.secret)
}

// parse checks signature, expiry and type. Blacklisting is checked by the
// caller where it matters.
func (t *tokenIssuer) parse(raw, typ string) (*claims, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(raw, c, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, errTokenInvalid
	}
	if c.TokenType != typ {
		return nil, errTokenInvalid
	}
	return c, nil
}

func (t *tokenIssuer) blacklistToken(ctx context.Context, c *claims) error {
	var expires time.Time
	if c.ExpiresAt != nil {
		expires = c.ExpiresAt.Time
	}
	return t.blacklist.Add(ctx, c.ID, c.UserID, expires)
}

func (t *tokenIssuer) isBlacklisted(ctx context.Context, c *claims) (bool, error) {
	return t.blacklist.Contains(ctx, c.ID)
}
