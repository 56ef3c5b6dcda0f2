package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity token'ın taşıdığı oturum kimliği. RBAC kararları veritabanına gitmeden
// Role üzerinden verilir.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string // super_admin | admin | hr_manager | manager | employee
}

// Session imzalı token ve bitiş zamanı. Bitiş zamanı oturum çerezine de yazılır.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

var (
	errEmptySecret = errors.New("jwt: secret boş")
	errIncomplete  = errors.New("jwt: kullanıcı, şirket ve rol zorunlu")
)

// Issue kimlik için HS256 imzalı token üretir. Kullanıcı kimliği sub alanında taşınır.
func Issue(secret, issuer string, id Identity, ttl time.Duration) (Session, error) {
	if secret == "" {
		return Session{}, errEmptySecret
	}
	if id.UserID == "" || id.CompanyID == "" || id.Role == "" {
		return Session{}, errIncomplete
	}
	now := time.Now()
	exp := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		CompanyID: id.CompanyID,
		Role:      id.Role,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return Session{}, fmt.Errorf("jwt: imzalama: %w", err)
	}
	return Session{Token: signed, ExpiresAt: exp}, nil
}

// Verify imzayı ve süreyi doğrular. Yalnızca HS256 kabul edilir; exp alanı zorunludur.
func Verify(secret, token string) (Identity, error) {
	if secret == "" {
		return Identity{}, errEmptySecret
	}
	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("jwt: %w", err)
	}
	id := Identity{UserID: c.Subject, CompanyID: c.CompanyID, Role: c.Role}
	if id.UserID == "" || id.CompanyID == "" || id.Role == "" {
		return Identity{}, errIncomplete
	}
	return id, nil
}
