// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iyunix/go-workshopchat/internal/domain"
)

// DefaultTTL is the lifetime of tokens issued without an explicit TTL.
const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity a request acts under.
type Claims struct {
	UserID string
	Role   domain.Role
}

// GenerateJWT signs an HS256 token carrying the user ID in "sub" and the
// conversation side in "role".
func GenerateJWT(userID string, role domain.Role, secretKey []byte, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user ID cannot be empty")
	}
	if !role.Valid() {
		return "", domain.ErrUnknownRole
	}
	if len(secretKey) == 0 {
		return "", errors.New("secret key cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken checks the signature and expiry and extracts the claims.
func ValidateToken(tokenString string, secretKey []byte) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := mapClaims.GetSubject()
	if err != nil || userID == "" {
		return nil, ErrInvalidToken
	}
	roleClaim, _ := mapClaims["role"].(string)
	role, err := domain.ParseRole(roleClaim)
	if err != nil {
		return nil, err
	}

	return &Claims{UserID: userID, Role: role}, nil
}
