package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/repository"
)

var (
	// ErrEmailTaken indicates an admin with the given email already exists.
	ErrEmailTaken = errors.New("admin with this email already exists")
	// ErrInvalidCredentials indicates the email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled indicates the account exists but is deactivated.
	ErrAccountDisabled = errors.New("account is deactivated")
	// ErrAdminNotFound indicates the admin id does not resolve.
	ErrAdminNotFound = errors.New("admin not found")
)

// AuthService manages admin accounts and credential verification.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Profile(ctx context.Context, adminID uint) (dto.AdminProfile, error)
	UpdateProfile(ctx context.Context, adminID uint, req dto.ProfileUpdateRequest) (dto.AdminProfile, error)
}

type authService struct {
	repo      repository.AdminRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the admin auth service.
func NewAuthService(repo repository.AdminRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		repo:      repo,
		validator: validate,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if exists {
		return dto.AuthResponse{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "admin"
	}

	admin := models.Admin{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, &admin); err != nil {
		return dto.AuthResponse{}, err
	}

	token, err := s.signToken(admin)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("admin_id", admin.ID).Msg("admin registered")

	return dto.AuthResponse{Admin: toAdminProfile(admin), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	if !admin.IsActive {
		return dto.AuthResponse{}, ErrAccountDisabled
	}

	lastLogin := s.now()
	admin.LastLogin = &lastLogin
	if err := s.repo.Save(ctx, &admin); err != nil {
		return dto.AuthResponse{}, err
	}

	token, err := s.signToken(admin)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("admin_id", admin.ID).Msg("admin logged in")

	return dto.AuthResponse{Admin: toAdminProfile(admin), Token: token}, nil
}

func (s *authService) Profile(ctx context.Context, adminID uint) (dto.AdminProfile, error) {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminProfile{}, ErrAdminNotFound
		}
		return dto.AdminProfile{}, err
	}
	return toAdminProfile(admin), nil
}

func (s *authService) UpdateProfile(ctx context.Context, adminID uint, req dto.ProfileUpdateRequest) (dto.AdminProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AdminProfile{}, err
	}

	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminProfile{}, ErrAdminNotFound
		}
		return dto.AdminProfile{}, err
	}

	if username := strings.TrimSpace(req.Username); username != "" {
		admin.Username = username
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != admin.Email {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return dto.AdminProfile{}, err
		}
		if exists {
			return dto.AdminProfile{}, ErrEmailTaken
		}
		admin.Email = email
	}

	if err := s.repo.Save(ctx, &admin); err != nil {
		return dto.AdminProfile{}, err
	}

	return toAdminProfile(admin), nil
}

func (s *authService) signToken(admin models.Admin) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  admin.ID,
		"role": admin.Role,
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func toAdminProfile(admin models.Admin) dto.AdminProfile {
	return dto.AdminProfile{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		Role:      admin.Role,
		IsActive:  admin.IsActive,
		LastLogin: admin.LastLogin,
		CreatedAt: admin.CreatedAt,
	}
}
