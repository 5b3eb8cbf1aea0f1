package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// LoginRequest is the student login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the linked student code (when the account has one) and
// an access token.
type LoginResult struct {
	Code  string `json:"code,omitempty"`
	Token string `json:"token"`
}

// RegisterRequest creates a login account, optionally linked to a student
// code so the card loads right after login.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code"`
}

// OrganizerLoginRequest is the organizer sign-in payload.
type OrganizerLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// OrganizerLoginResult names the resolved organizer and carries their token.
type OrganizerLoginResult struct {
	OrganizerName string `json:"organizerName"`
	Token         string `json:"token"`
}

// AuthService handles student account auth and organizer identity
// resolution.
type AuthService struct {
	users     authUserRepository
	resolver  identity.Resolver
	secret    []byte
	expiry    time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs AuthService.
func NewAuthService(users authUserRepository, resolver identity.Resolver, secret string, expiry time.Duration, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		resolver:  resolver,
		secret:    []byte(secret),
		expiry:    expiry,
		validator: validate,
		logger:    logger,
	}
}

// Login authenticates a student account and issues a token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	code := ""
	if user.StudentCode != nil {
		code = *user.StudentCode
	}

	token, err := s.issueToken(&models.JWTClaims{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        models.RoleStudent,
		StudentCode: code,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("student login", zap.String("email", user.Email))
	return &LoginResult{Code: code, Token: token}, nil
}

// Register creates a student login account with a hashed password.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{Email: req.Email, PasswordHash: string(hash)}
	if req.Code != "" {
		user.StudentCode = &req.Code
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	s.logger.Info("account created", zap.String("email", user.Email))
	return user, nil
}

// OrganizerLogin resolves a credential pair against the organizer allow-list
// and issues a token naming the identity.
func (s *AuthService) OrganizerLogin(ctx context.Context, req OrganizerLoginRequest) (*OrganizerLoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	name, ok := s.resolver.Resolve(req.Email, req.Password)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "access denied")
	}

	token, err := s.issueToken(&models.JWTClaims{
		Role:          models.RoleOrganizer,
		OrganizerName: name,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("organizer login", zap.String("organizer", name))
	return &OrganizerLoginResult{OrganizerName: name, Token: token}, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(raw string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) issueToken(claims *models.JWTClaims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return signed, nil
}
