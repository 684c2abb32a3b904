package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/superplace/growth-report-api/internal/models"
	"github.com/superplace/growth-report-api/pkg/config"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
)

// TokenService validates bearer tokens minted by the account service.
// This API never issues tokens of its own.
type TokenService struct {
	cfg config.JWTConfig
}

// NewTokenService constructs a TokenService.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *TokenService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, options...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unrecognised role")
	}
	if !audienceAllowed(claims.Audience, s.cfg.Audience) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token audience mismatch")
	}
	return claims, nil
}

// audienceAllowed passes when no audience is configured, or when the
// token carries at least one configured audience.
func audienceAllowed(tokenAud jwt.ClaimStrings, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, want := range allowed {
		for _, got := range tokenAud {
			if got == want {
				return true
			}
		}
	}
	return false
}
