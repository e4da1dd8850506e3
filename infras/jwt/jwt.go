package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/shared/timezone"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

// Claims carried by the session cookie. The token id points at the
// server-side session record, which is the source of truth.
type Claims struct {
	TokenID string `json:"token_id"`
	StaffID int64  `json:"staff_id"`
	jwt.RegisteredClaims
}

// Signer signs and verifies session cookies.
type Signer interface {
	Sign(tokenID string, staffID int64) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type signerImpl struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func New(cfg *config.Config) Signer {
	return NewSigner(cfg.Session.Secret, cfg.App.Name, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
}

func NewSigner(secret, issuer string, ttl time.Duration) Signer {
	return &signerImpl{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

func (s *signerImpl) Sign(tokenID string, staffID int64) (string, error) {
	now := timezone.Now()

	claims := Claims{
		TokenID: tokenID,
		StaffID: staffID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", staffID),
			ID:        tokenID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *signerImpl) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenID == "" || claims.StaffID == 0 {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}
