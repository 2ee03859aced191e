package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeSession = "session"

var ErrInvalidToken = errors.New("invalid token")

// SessionClaims is what a session token asserts about its bearer.
type SessionClaims struct {
	UserID    int64
	Username  string
	SessionID string
	ExpiresAt time.Time
}

func NewSessionToken(user entity.User, sessionID, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["uid"] = user.ID
	claims["username"] = user.Username
	claims["jti"] = sessionID
	claims["typ"] = tokenTypeSession
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies the signature, expiry and type of a session token.
func ParseSessionToken(tokenString, secret string) (SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return SessionClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return SessionClaims{}, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	if typ, ok := claims["typ"].(string); !ok || typ != tokenTypeSession {
		return SessionClaims{}, fmt.Errorf("%w: unexpected type %v", ErrInvalidToken, claims["typ"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return SessionClaims{}, fmt.Errorf("%w: exp claim missing", ErrInvalidToken)
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return SessionClaims{}, fmt.Errorf("%w: uid claim missing", ErrInvalidToken)
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return SessionClaims{}, fmt.Errorf("%w: jti claim missing", ErrInvalidToken)
	}

	username, _ := claims["username"].(string)

	return SessionClaims{
		UserID:    int64(uid),
		Username:  username,
		SessionID: jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
