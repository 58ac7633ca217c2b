package services

import (
	"time"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 7 * 24 * time.Hour

// TokenClaims is the payload carried inside an access token.
type TokenClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth issues and verifies the HS256 access tokens used by the API guard.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) Auth {
	if secret == "" {
		secret = "secret-key"
	}
	return Auth{secret: []byte(secret)}
}

// IssueToken signs a 7-day token for the given user.
func (a Auth) IssueToken(user *models.User) (string, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID.String(),
		Email:  email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyToken parses and validates a token, returning its claims.
func (a Auth) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.NewInvalidTokenError()
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.NewInvalidTokenError()
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, errs.NewInvalidTokenError()
	}
	return claims, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
