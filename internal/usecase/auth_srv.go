package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/security"
	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	// Authenticate returns the account for email/password, or nil when either
	// the email is unknown or the password does not match. A non-nil error
	// means the store itself failed.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.UserResponse, error)
}

type authService struct {
	users             repository.UserRepository
	hasher            security.PasswordHasher
	passwordMinLength int
	log               *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	hasher security.PasswordHasher,
	passwordMinLength int,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:             users,
		hasher:            hasher,
		passwordMinLength: passwordMinLength,
		log:               log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	// 1. Field validation
	errs := utils.ValidateStruct(req)
	if !errs.Has(fieldPassword) && utf8.RuneCountInString(req.Password) < s.passwordMinLength {
		errs = append(errs, utils.FieldError{
			Field:   fieldPassword,
			Message: fmt.Sprintf("Password is too short (minimum is %d characters)", s.passwordMinLength),
		})
	}
	if len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Strings("errors", errs.FullMessages()))
		return nil, newValidationError(errs)
	}

	// 2. Early duplicate check; the unique index still decides races
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		s.log.Warn("Email already registered", zap.String("email", req.Email))
		return nil, fieldError(fieldEmail, msgEmailTaken)
	}

	// 3. Hash password
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Persist
	user := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fieldError(fieldEmail, msgEmailTaken)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Strings("errors", errs.FullMessages()))
		return nil, newValidationError(errs)
	}

	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		s.log.Error("Failed to authenticate", zap.Error(err))
		return nil, err
	}
	if user == nil {
		s.log.Warn("Invalid credentials", zap.String("email", utils.NormalizeEmail(req.Email)))
		return nil, ErrInvalidCredentials
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}
