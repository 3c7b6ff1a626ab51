package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidSession = errors.New("invalid session token")

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	UserID    string
	Email     string
	SessionID string
	ExpiresAt time.Time
}

type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for the user with a fresh session id.
func (m *JWTManager) Issue(userID, email string) (string, SessionClaims, error) {
	if len(m.secret) == 0 {
		return "", SessionClaims{}, fmt.Errorf("jwt secret is empty")
	}
	if strings.TrimSpace(userID) == "" {
		return "", SessionClaims{}, fmt.Errorf("invalid session payload")
	}

	now := m.now().UTC()
	out := SessionClaims{
		UserID:    userID,
		Email:     email,
		SessionID: uuid.NewString(),
		ExpiresAt: now.Add(m.ttl),
	}
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        out.SessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(out.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", SessionClaims{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, out, nil
}

func (m *JWTManager) Parse(raw string) (SessionClaims, error) {
	if strings.TrimSpace(raw) == "" {
		return SessionClaims{}, errInvalidSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || token == nil || !token.Valid {
		return SessionClaims{}, errInvalidSession
	}
	if claims.Subject == "" || claims.ID == "" {
		return SessionClaims{}, errInvalidSession
	}

	return SessionClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
