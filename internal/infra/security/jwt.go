package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"

	"github.com/arklim/social-platform-api/internal/core/domain"
)

var (
	// ErrTokenInvalid indicates the token is malformed, unsigned by us, or
	// carries the wrong claim shape.
	ErrTokenInvalid = errors.New("jwt: token invalid")
	// ErrTokenExpired indicates the token was valid but is past its expiry.
	ErrTokenExpired = errors.New("jwt: token expired")
)

const (
	defaultAccessTTL = 24 * time.Hour
	defaultResetTTL  = 30 * time.Minute

	purposePasswordReset = "password_reset"
)

// AccessClaims carries the caller identity embedded in an access token.
type AccessClaims struct {
	UserID int64       `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// ResetClaims carries the target identity embedded in a password reset token.
type ResetClaims struct {
	UserID  int64  `json:"userId"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed bearer tokens. The signing
// secret is supplied at construction, never read from ambient state.
type TokenService struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	resetTTL  time.Duration
	now       func() time.Time
}

// TokenServiceOptions configures a TokenService.
type TokenServiceOptions struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration
	ResetTTL  time.Duration
}

// NewTokenService constructs a TokenService.
func NewTokenService(opts TokenServiceOptions) (*TokenService, error) {
	secret := strings.TrimSpace(opts.Secret)
	if secret == "" {
		return nil, fmt.Errorf("jwt: signing secret is required")
	}

	accessTTL := opts.AccessTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}

	resetTTL := opts.ResetTTL
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}

	return &TokenService{
		secret:    []byte(secret),
		issuer:    strings.TrimSpace(opts.Issuer),
		accessTTL: accessTTL,
		resetTTL:  resetTTL,
		now:       time.Now,
	}, nil
}

// WithClock allows tests to override the clock used by the service.
func (s *TokenService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// IssueAccessToken produces a signed token embedding the user id and role,
// expiring one access-TTL from issuance.
func (s *TokenService) IssueAccessToken(userID int64, role domain.Role) (string, error) {
	now := s.now().UTC()
	claims := AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign access token: %w", err)
	}

	return signed, nil
}

// IssuePasswordResetToken produces a short-lived signed token embedding only
// the target user id.
func (s *TokenService) IssuePasswordResetToken(userID int64) (string, error) {
	now := s.now().UTC()
	claims := ResetClaims{
		UserID:  userID,
		Purpose: purposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign reset token: %w", err)
	}

	return signed, nil
}

// ParseAccessToken verifies the signature and expiry of an access token and
// returns the embedded identity.
func (s *TokenService) ParseAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(token, claims); err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ParsePasswordResetToken verifies a reset token and returns the target user id.
func (s *TokenService) ParsePasswordResetToken(token string) (int64, error) {
	claims := &ResetClaims{}
	if err := s.parse(token, claims); err != nil {
		return 0, err
	}
	if claims.UserID == 0 || claims.Purpose != purposePasswordReset {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (s *TokenService) parse(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}

	if !parsed.Valid {
		return ErrTokenInvalid
	}

	return nil
}
