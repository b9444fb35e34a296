package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kritika/internal/apperrors"
	"kritika/internal/models"
	"kritika/internal/repositories"
	"kritika/pkg/mailer"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	confirmSubject = "Verify your account"
)

// Credential is the access/refresh token pair minted for a verified
// identity. It carries no persistent state of its own.
type Credential struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenConfig holds the signing secret and lifetimes for confirmation
// codes and credentials.
type TokenConfig struct {
	Secret     string
	CodeTTL    time.Duration
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthService issues confirmation codes and exchanges them for credentials.
// Confirmation codes are stateless: a signed claim of {email} with an
// expiry, never persisted.
type AuthService struct {
	userRepo   repositories.UserRepository
	mailer     mailer.Mailer
	secret     []byte
	codeTTL    time.Duration
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, m mailer.Mailer, cfg TokenConfig) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mailer:     m,
		secret:     []byte(cfg.Secret),
		codeTTL:    cfg.CodeTTL,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// RequestConfirmationCode signs a time-bound code asserting the email and
// dispatches it to the account's mailbox. The account must already exist.
// Mail transport failures propagate: the caller's request fails loudly.
func (s *AuthService) RequestConfirmationCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}

	now := time.Now()
	code := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.codeTTL).Unix(),
	})
	signed, err := code.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("failed to sign confirmation code: %w", err)
	}

	body := fmt.Sprintf("Hi %s! Use this confirmation code to verify your account: %s",
		user.Username, signed)
	return s.mailer.Send(ctx, email, confirmSubject, body)
}

// ExchangeCode verifies a confirmation code against the submitted email,
// idempotently marks the account verified and mints a credential pair.
func (s *AuthService) ExchangeCode(ctx context.Context, email, code string) (*Credential, error) {
	claims, err := s.parse(code)
	if err != nil {
		return nil, err
	}

	encodedEmail, _ := claims["email"].(string)
	if encodedEmail == "" {
		return nil, apperrors.InvalidCode("confirmation code carries no email")
	}
	if encodedEmail != email {
		return nil, apperrors.EmailMismatch("wrong confirmation code for this email")
	}

	user, err := s.userRepo.GetByEmail(encodedEmail)
	if err != nil {
		return nil, err
	}

	// Re-verifying is a no-op.
	if !user.IsVerified {
		user.IsVerified = true
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	return s.mint(user)
}

// Refresh exchanges a valid refresh token for a fresh credential pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Credential, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token").WithCause(err)
	}
	if tt, _ := claims["token_type"].(string); tt != tokenTypeRefresh {
		return nil, apperrors.Unauthorized("not a refresh token")
	}
	sub, _ := claims["sub"].(string)
	user, err := s.userRepo.GetByID(sub)
	if err != nil {
		return nil, err
	}
	return s.mint(user)
}

// ValidateAccess verifies an access token and returns the identity it
// asserts. Used by the auth middleware on every protected request.
func (s *AuthService) ValidateAccess(token string) (*Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	if tt, _ := claims["token_type"].(string); tt != tokenTypeAccess {
		return nil, apperrors.Unauthorized("not an access token")
	}
	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || !models.Role(role).Valid() {
		return nil, apperrors.Unauthorized("malformed token claims")
	}
	return &Identity{UserID: sub, Username: username, Role: models.Role(role)}, nil
}

// parse verifies signature and expiry, mapping failures onto the
// expired/invalid code taxonomy.
func (s *AuthService) parse(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ExpiredCode("confirmation code expired").WithCause(err)
		}
		return nil, apperrors.InvalidCode("invalid confirmation code").WithCause(err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, apperrors.InvalidCode("invalid confirmation code")
	}
	return claims, nil
}

// mint derives a credential pair from the account's identity.
func (s *AuthService) mint(user *models.User) (*Credential, error) {
	now := time.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        user.ID,
		"username":   user.Username,
		"role":       string(user.Role),
		"token_type": tokenTypeAccess,
		"iat":        now.Unix(),
		"exp":        now.Add(s.accessTTL).Unix(),
	})
	accessStr, err := access.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        user.ID,
		"token_type": tokenTypeRefresh,
		"iat":        now.Unix(),
		"exp":        now.Add(s.refreshTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &Credential{AccessToken: accessStr, RefreshToken: refreshStr}, nil
}
