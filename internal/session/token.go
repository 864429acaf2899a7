package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
)

const tokenIssuer = "everest-shop"

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Tokens signs the session cookie. The HMAC key is derived from the
// configured secret, or from random bytes when no secret is set, in which
// case sessions do not survive a restart anyway.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type TokenOption func(*Tokens)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(t *Tokens) { t.now = now }
}

func NewTokens(secret string, ttl time.Duration, opts ...TokenOption) (*Tokens, error) {
	ikm := []byte(secret)
	if secret == "" {
		ikm = make([]byte, 32)
		if _, err := rand.Read(ikm); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, ikm, []byte(tokenIssuer), []byte("session-token"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}

	t := &Tokens{key: key, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Issue returns a token naming sessionID and its expiry.
func (t *Tokens) Issue(sessionID string) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a token and returns the session id it carries.
func (t *Tokens) Parse(tokenString string) (string, error) {
	claims, err := t.ParseClaims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.SessionID, nil
}

func (t *Tokens) ParseClaims(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.key, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(t.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Stale reports whether a valid token has used up half its lifetime and
// should be re-issued to a visitor who is still active.
func (t *Tokens) Stale(claims *Claims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Sub(t.now()) <= t.ttl/2
}
