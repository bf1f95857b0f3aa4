package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTService struct {
	secretKey           string
	accessTokenDuration time.Duration
	now                 func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, accessTokenDuration time.Duration) *JWTService {
	if accessTokenDuration <= 0 {
		accessTokenDuration = 24 * time.Hour
	}
	return &JWTService{
		secretKey:           secretKey,
		accessTokenDuration: accessTokenDuration,
		now:                 time.Now,
	}
}

// GenerateAccessToken signs an HS256 token whose subject is the username
func (s *JWTService) GenerateAccessToken(username string) (string, int64, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTokenDuration)

	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int64(s.accessTokenDuration.Seconds()), nil
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return &TokenClaims{
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
