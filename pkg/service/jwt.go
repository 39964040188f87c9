package service

import (
	"errors"
	"time"

	apperrors "rating-system/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

type JwtCustomClaim struct {
	UserID         uint64 `json:"userId"`
	Role           string `json:"role"`
	IsRefreshToken bool   `json:"isRefreshToken"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID uint64, role string) (string, string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:       secretKey,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: refreshTokenExp,
	}
}

func (service *jwtService) GenerateTokens(userID uint64, role string) (string, string, error) {
	now := time.Now()

	accessTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		IsRefreshToken: false,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.AccessTokenExp)),
		},
	}

	refreshTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.RefreshTokenExp)),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS512, accessTokenClaims)
	accessTokenString, err := accessToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshTokenClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenString, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.AccessTokenExp
}

func (s *jwtService) GetRefreshTokenTTL() time.Duration {
	return s.RefreshTokenExp
}

func (service *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		// jwt/v5 сам проверяет exp/nbf внутри Parse; разворачиваем его ошибки
		// в наши сентинелы.
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, apperrors.ErrTokenNotYetValid
		default:
			return nil, apperrors.ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
