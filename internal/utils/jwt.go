package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs a token for the given user claims.
func GenerateJWT(user models.JWT, cfg models.JWTConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"role":     user.Role,
		"iss":      cfg.Issuer,
		"aud":      cfg.Audience,
		"iat":      now.Unix(),
		"exp":      now.Add(cfg.Expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// VerifyJWT parses and validates a token string, returning the claims.
func VerifyJWT(tokenString string, cfg models.JWTConfig) (*models.JWT, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.SecretKey), nil
	},
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	user := &models.JWT{}
	if id, ok := claims["id"].(float64); ok {
		user.ID = int(id)
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if username, ok := claims["username"].(string); ok {
		user.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}

	return user, nil
}
