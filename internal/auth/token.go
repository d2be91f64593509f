package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies one authenticated login: the account plus the
// session key its audit row and cart are keyed by.
type Session struct {
	UserID     uint
	SessionKey string
}

// GenerateToken signs a session token for the given login.
func GenerateToken(secret string, s Session, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": float64(s.UserID),
		"sid": s.SessionKey,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a session token and returns the session it carries.
func ParseToken(secret, tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Session{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return Session{}, errors.New("invalid subject claim")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return Session{}, errors.New("invalid session claim")
	}

	return Session{UserID: uint(sub), SessionKey: sid}, nil
}
