package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

// minPasswordLength is the shortest password the API ever accepts; stored
// hashes can never correspond to anything shorter, so login rejects short
// input before touching the credential store.
const minPasswordLength = 8

type authUserFinder interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthConfig holds token issuance parameters.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService authenticates users and mints bearer tokens.
type AuthService struct {
	users       authUserFinder
	credentials CredentialStore
	validate    *validator.Validate
	logger      *zap.Logger
	cfg         AuthConfig
}

// NewAuthService constructs the service with defaults.
func NewAuthService(users authUserFinder, credentials CredentialStore, validate *validator.Validate, logger *zap.Logger, cfg AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = 2 * time.Hour
	}
	return &AuthService{
		users:       users,
		credentials: credentials,
		validate:    validate,
		logger:      logger,
		cfg:         cfg,
	}
}

// Login verifies credentials and returns a fresh token. Every failure path
// reports the same message so the response never reveals whether the email
// is registered.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.TokenResponse, error) {
	// No stored credential is ever shorter than the minimum, and no account
	// exists for a malformed email, so both reject before any hashing work.
	// These are validation failures, not failed authentications, hence the
	// 400 with the same opaque message.
	if len(req.Password) < minPasswordLength {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Incorrect email or password")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Incorrect email or password")
	}

	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up user")
	}
	if !s.credentials.Verify(user.Password, req.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	s.logger.Info("user logged in", zap.Int("user_id", user.ID))
	return &models.TokenResponse{Token: token}, nil
}

// IssueToken signs an access token carrying only the user id. Expiry is
// absolute from issuance.
func (s *AuthService) IssueToken(userID int) (string, error) {
	now := time.Now()
	claims := models.JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

// ResolveIdentity loads the token's user and derives their role. The role
// is read from the database per request so a revoked flag takes effect on
// the next call, not at token expiry.
func (s *AuthService) ResolveIdentity(ctx context.Context, claims *models.JWTClaims) (*models.Identity, error) {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUnauthorized
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve identity")
	}
	return &models.Identity{UserID: user.ID, Role: user.Role()}, nil
}
