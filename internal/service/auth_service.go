package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

// AuthConfig defines how identity tokens are verified.
type AuthConfig struct {
	TokenSecret string
	Issuer      string
	Audience    []string
	Leeway      time.Duration
}

// AuthService verifies identity tokens issued by the external identity provider.
// It never stores credentials.
type AuthService struct {
	logger *zap.Logger
	config AuthConfig
	parser *jwt.Parser
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(config.Leeway),
	}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	return &AuthService{logger: logger, config: config, parser: jwt.NewParser(opts...)}
}

// ValidateToken parses and validates an identity token, returning the caller identity.
func (s *AuthService) ValidateToken(tokenString string) (*models.Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing identity token")
	}
	claims := &models.IdentityClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil || !token.Valid {
		message := "invalid identity token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			message = "identity token expired"
		}
		s.logger.Debug("identity token rejected", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, message)
	}
	if !s.audienceAllowed(claims.Audience) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "identity token audience not accepted")
	}
	if claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "identity token has no subject")
	}
	return &models.Identity{
		UID:   claims.Subject,
		Email: strings.ToLower(strings.TrimSpace(claims.Email)),
		Name:  claims.Name,
	}, nil
}

// IssueToken signs an identity token. It exists for local tooling and tests; production tokens
// come from the identity provider.
func (s *AuthService) IssueToken(identity models.Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := models.IdentityClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UID,
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings(s.config.Audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign identity token")
	}
	return signed, nil
}

func (s *AuthService) audienceAllowed(aud jwt.ClaimStrings) bool {
	if len(s.config.Audience) == 0 {
		return true
	}
	for _, want := range s.config.Audience {
		for _, got := range aud {
			if want == got {
				return true
			}
		}
	}
	return false
}
