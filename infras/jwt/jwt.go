package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rkhub/config"
	"rkhub/shared/constant"
	"rkhub/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header is required")
	ErrTokenFormat  = errors.New("authorization header must start with 'Bearer '")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"

	bearerType = "Bearer"
)

// Identity is what a token vouches for.
type Identity struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
}

type Claims struct {
	Identity
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	Issue(identity Identity) (*TokenPair, error)
	Verify(token string, tokenType TokenType) (*Claims, error)
	Refresh(refreshToken string) (*TokenPair, error)
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// Service signs HS256 tokens. Access and refresh tokens use separate
// secrets so one can never stand in for the other.
type Service struct {
	issuer string
	keys   map[TokenType]signingKey
	parser *jwt.Parser
}

func New(cfg *config.Config) JWT {
	return &Service{
		issuer: cfg.App.Name,
		keys: map[TokenType]signingKey{
			AccessToken:  {secret: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {secret: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.App.Name),
			jwt.WithExpirationRequired(),
		),
	}
}

func (s *Service) Issue(identity Identity) (*TokenPair, error) {
	now := timezone.Now()

	access, err := s.sign(identity, AccessToken, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.sign(identity, RefreshToken, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    bearerType,
		ExpiresIn:    int64(s.keys[AccessToken].ttl.Seconds()),
	}, nil
}

func (s *Service) sign(identity Identity, tokenType TokenType, issuedAt time.Time) (string, error) {
	key := s.keys[tokenType]

	claims := Claims{
		Identity: identity,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   identity.AdminID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(key.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses token and checks it was issued by this service as tokenType.
func (s *Service) Verify(token string, tokenType TokenType) (*Claims, error) {
	key, ok := s.keys[tokenType]
	if !ok {
		return nil, fmt.Errorf("unknown token type: %s", tokenType)
	}

	claims := &Claims{}

	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return key.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType || claims.AdminID == constant.Empty:
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// Refresh issues a fresh pair for the identity carried by refreshToken.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.Verify(refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.Issue(claims.Identity)
}

// FromHeader returns the token of an "Authorization: Bearer <token>" value.
func FromHeader(authHeader string) (string, error) {
	if authHeader == constant.Empty {
		return constant.Empty, ErrMissingToken
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || scheme != bearerType || token == constant.Empty {
		return constant.Empty, ErrTokenFormat
	}

	return token, nil
}

type claimsKey struct{}

// WithClaims stores claims on ctx for handlers behind the auth middleware.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the claims stored by WithClaims.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)

	return claims, ok && claims != nil
}
