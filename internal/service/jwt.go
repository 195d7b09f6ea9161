package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret []byte
	tokenTTL  = 24 * time.Hour
)

// InitJWT sets the signing secret for session tokens.
func InitJWT(secret string) {
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// SetTokenTTL changes the lifetime of newly issued session tokens. It is
// separate from the session idle timeout: an expired session answers 404
// on its own, while the token only has to outlive active play.
func SetTokenTTL(ttl time.Duration) {
	if ttl > 0 {
		tokenTTL = ttl
	}
}

// GenerateJWT issues a token carrying the session id.
func GenerateJWT(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("empty session id")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT validates the token and returns its session id.
func ParseJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	}, jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("sid not found")
	}

	return sid, nil
}
