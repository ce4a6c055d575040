package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin is the only role accepted by the admin API
const RoleAdmin = "admin"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrUnauthorized = errors.New("unauthorized - missing required role")
	ErrNoSecret     = errors.New("jwt secret is required")
)

// Claims are the admin token claims
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`

	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Config holds settings for the token service
type Config struct {
	Secret      string
	Issuer      string
	DefaultTTL  time.Duration
	AdminEmails []string // when non-empty, only these addresses may be issued tokens
}

// Service issues and validates HS256 admin tokens
type Service struct {
	secret         []byte
	issuer         string
	defaultTTL     time.Duration
	adminEmails    []string
	devAuthEnabled bool
	devAuthToken   string
	now            func() time.Time
}

// NewService creates the token service
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 24 * time.Hour
	}
	emails := make([]string, 0, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		emails = append(emails, strings.ToLower(strings.TrimSpace(e)))
	}
	return &Service{
		secret:      []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		defaultTTL:  cfg.DefaultTTL,
		adminEmails: emails,
		now:         time.Now,
	}, nil
}

// SetDevAuth configures development authentication bypass
func (s *Service) SetDevAuth(enabled bool, token string) {
	s.devAuthEnabled = enabled
	s.devAuthToken = token
}

// IssueToken signs an admin token for email. A zero ttl uses the default.
func (s *Service) IssueToken(email string, ttl time.Duration) (string, *Claims, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil, fmt.Errorf("email is required")
	}
	if len(s.adminEmails) > 0 && !slices.Contains(s.adminEmails, email) {
		return "", nil, fmt.Errorf("%s is not an admin address: %w", email, ErrUnauthorized)
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now()
	claims := &Claims{
		Email: email,
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken checks signature, expiry, issuer and role. When an admin
// allow-list is configured the token's email must still be on it.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	if s.devAuthEnabled && s.devAuthToken != "" &&
		subtle.ConstantTimeCompare([]byte(tokenString), []byte(s.devAuthToken)) == 1 {
		return s.GetDevClaims(), nil
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if len(s.adminEmails) > 0 && !slices.Contains(s.adminEmails, strings.ToLower(claims.Email)) {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// GetDevClaims returns fixed claims for development mode
func (s *Service) GetDevClaims() *Claims {
	now := s.now()
	return &Claims{
		Email: "dev@podsite.local",
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "dev-admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
}
