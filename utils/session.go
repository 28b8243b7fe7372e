package utils

import (
	"errors"
	"time"

	"backend/models"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the http-only cookie carrying the signed session.
const SessionCookieName = "ft_session"

// GenerateSessionToken signs the canonical profile into an HS256 JWT
// used as the session cookie value.
func GenerateSessionToken(profile *models.CanonicalProfile, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      profile.ID,
		"username": profile.Username,
		"email":    profile.Email,
		"avatar":   profile.Avatar,
		"provider": profile.Provider,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a session cookie value and rebuilds the
// canonical profile from its claims.
func ParseSessionToken(tokenString, secret string) (*models.CanonicalProfile, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return nil, errors.New("uid claim missing")
	}

	profile := &models.CanonicalProfile{ID: uid}
	profile.Username, _ = claims["username"].(string)
	profile.Email, _ = claims["email"].(string)
	profile.Avatar, _ = claims["avatar"].(string)
	profile.Provider, _ = claims["provider"].(string)
	return profile, nil
}
