package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/bookcommunity/internal/entity"
	"anoa.com/bookcommunity/internal/modules/user/dto"
	"anoa.com/bookcommunity/internal/modules/user/repository/mock"
	"anoa.com/bookcommunity/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func TestRegisterCreatesMemberWithBookCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo, testSecret, time.Hour)
	ctx := context.Background()

	repo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().FindByUsername(ctx, "alice").Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().FindRoleByName(ctx, entity.RoleMember).Return(&entity.Role{ID: 2, Name: entity.RoleMember}, nil)
	repo.EXPECT().CreateWithBookCase(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")); err != nil {
			t.Errorf("password was not hashed with bcrypt: %v", err)
		}
		u.ID = uuid.New()
		return nil
	})

	resp, err := svc.Register(ctx, dto.RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User.Role != entity.RoleMember {
		t.Errorf("role = %q, want member", resp.User.Role)
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != resp.User.ID.String() {
		t.Errorf("subject = %q, want %q", claims.Subject, resp.User.ID)
	}
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo, testSecret, time.Hour)

	repo.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(&entity.User{}, nil)

	_, err := svc.Register(context.Background(), dto.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "s3cret-pass"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	user := &entity.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		password string
		found    bool
		wantErr  error
	}{
		{"valid credentials", "right-password", true, nil},
		{"wrong password", "wrong-password", true, apperror.ErrUnauthorized},
		{"unknown email", "right-password", false, apperror.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockUserRepository(ctrl)
			svc := NewAuthService(repo, testSecret, time.Hour)

			if tt.found {
				repo.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(user, nil)
			} else {
				repo.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
			}

			resp, err := svc.Login(context.Background(), dto.LoginInput{Email: "alice@example.com", Password: tt.password})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if resp.TokenType != "Bearer" || resp.AccessToken == "" {
				t.Errorf("unexpected auth response %+v", resp)
			}
		})
	}
}

func TestMeNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo, testSecret, time.Hour)

	id := uuid.New()
	repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

	if _, err := svc.Me(context.Background(), id); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
