package utils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// SessionTTL is how long an admin session stays valid after login.
const SessionTTL = 24 * time.Hour

var (
	jwtKey     []byte
	jwtKeyOnce sync.Once
)

// signingKey is resolved lazily so godotenv has loaded the .env file by the
// time JWT_SECRET is read.
func signingKey() []byte {
	jwtKeyOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "linkhub_secret_key"
		}
		jwtKey = []byte(secret)
	})
	return jwtKey
}

type SessionClaims struct {
	jwt.StandardClaims
}

// GenerateToken mints the opaque session token handed to the admin dashboard.
// The jti is a random v4 uuid, so tokens are unguessable and two logins in
// the same instant never collide. Validity is still decided by the sessions
// collection, not by the token alone.
func GenerateToken() (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(SessionTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// ValidateToken checks the token signature and expiry claim. Callers must
// still look the token up in the sessions collection.
func ValidateToken(signedToken string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return signingKey(), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
