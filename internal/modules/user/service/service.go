package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anoa.com/bookcommunity/internal/entity"
	"anoa.com/bookcommunity/internal/modules/user/dto"
	"anoa.com/bookcommunity/internal/modules/user/repository"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/database"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.Validation("email is already registered")
	} else if !database.IsNotFound(err) {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, apperror.Validation("username is already taken")
	} else if !database.IsNotFound(err) {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, entity.RoleMember)
	if err != nil {
		return nil, fmt.Errorf("default role not found: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		RoleID:       &role.ID,
		Role:         *role,
	}

	if err := s.repo.CreateWithBookCase(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Validation("username or email is already registered")
		}
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt.Unix(), nil
}
