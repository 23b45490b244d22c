// Package jwtmw はセッショントークンの発行・検証とGin用の認証ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/auth/usecase"
)

// DefaultTTL はセッショントークンの既定の有効期間（30日）です。
const DefaultTTL = 30 * 24 * time.Hour

// Claims はセッショントークンのペイロードです。subject にユーザーIDを格納します。
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer はHS256で署名されたセッショントークンを発行・検証します。
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// IssuerがTokenIssuerを実装していることをコンパイル時に検証します。
var _ usecase.TokenIssuer = (*Issuer)(nil)

// NewIssuer は指定されたシークレットと有効期間でIssuerを生成します。
// ttl が0以下の場合は DefaultTTL を使用します。
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue は subject, email, role, 絶対有効期限を含む署名済みトークンを生成します。
func (i *Issuer) Issue(userID, email string, role entity.Role) (string, error) {
	now := i.now()
	claims := Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse は署名と有効期限を検証し、クレームを返します。
// 期限切れは usecase.ErrExpiredToken、その他の失敗はすべて usecase.ErrInvalidToken になります。
func (i *Issuer) Parse(tokenStr string) (*entity.SessionClaims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, usecase.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidToken, err)
	}

	role, err := entity.ParseRole(claims.Role)
	if err != nil || claims.Subject == "" {
		return nil, usecase.ErrInvalidToken
	}
	return &entity.SessionClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
