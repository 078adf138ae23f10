package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cvtrack/internal/common"
)

// JWTProvider mints and verifies HS256 access tokens. Claims carry the
// account id and the account status so route gates never hit the
// database.
type JWTProvider struct {
	secret []byte
}

func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret)}
}

type Claims struct {
	AccountID     string `json:"account_id"`
	AccountStatus string `json:"account_status"`
	jwt.RegisteredClaims
}

func (p *JWTProvider) Generate(accountID common.UUID, accountStatus string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		AccountID:     accountID.String(),
		AccountStatus: accountStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (p *JWTProvider) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.AccountID == "" && claims.Subject != "" {
		claims.AccountID = claims.Subject
	}
	return claims, nil
}
