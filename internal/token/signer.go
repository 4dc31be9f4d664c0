// Package token はログイントークンの発行を提供する。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims はトークンのペイロード。メールアドレスのみを束縛する。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Signer はHS256で署名したJWTを発行する。
// 有効期限(exp)は付与しない。セッションの寿命はレジストリ側で管理する。
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner はSignerを生成する。secretが空の場合はエラーを返す。
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	return &Signer{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Sign はemailをペイロードとするトークンを発行する。
func (s *Signer) Sign(email string) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse はSignで発行したトークンを検証し、ペイロードを返す。
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return &claims, nil
}
