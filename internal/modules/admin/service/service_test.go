package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/bookcommunity/internal/entity"
	"anoa.com/bookcommunity/internal/modules/admin/dto"
	"anoa.com/bookcommunity/internal/modules/user/repository/mock"
	"anoa.com/bookcommunity/internal/policy"
	"anoa.com/bookcommunity/pkg/apperror"
	commonDto "anoa.com/bookcommunity/pkg/dto"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var (
	admin  = policy.Actor{UserID: uuid.New(), Username: "root", Authenticated: true, Admin: true}
	member = policy.Actor{UserID: uuid.New(), Username: "alice", Authenticated: true}
)

func TestListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewAdminService(repo)

	repo.EXPECT().FindAll(gomock.Any(), 0, 10).Return([]entity.User{
		{ID: admin.UserID, Username: "root", Role: entity.Role{Name: entity.RoleAdmin}},
		{ID: member.UserID, Username: "alice", Role: entity.Role{Name: entity.RoleMember}},
	}, int64(2), nil)

	res, err := svc.ListUsers(context.Background(), admin, commonDto.PageQuery{})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(res.Data) != 2 || res.Data[1].Role != entity.RoleMember || res.Meta.TotalItems != 2 {
		t.Errorf("unexpected page %+v", res)
	}

	if _, err := svc.ListUsers(context.Background(), member, commonDto.PageQuery{}); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("member: expected forbidden, got %v", err)
	}
}

func TestUpdateUserRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes a member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockUserRepository(ctrl)
		svc := NewAdminService(repo)
		memberRole := uint(2)

		repo.EXPECT().FindByID(ctx, member.UserID).Return(&entity.User{ID: member.UserID, Username: "alice", RoleID: &memberRole}, nil)
		repo.EXPECT().FindRoleByName(ctx, entity.RoleAdmin).Return(&entity.Role{ID: 1, Name: entity.RoleAdmin}, nil)
		repo.EXPECT().UpdateRole(ctx, member.UserID, uint(1)).Return(nil)

		res, err := svc.UpdateUserRole(ctx, admin, member.UserID, dto.UpdateRoleRequest{Role: entity.RoleAdmin})
		if err != nil {
			t.Fatalf("UpdateUserRole() error = %v", err)
		}
		if res.Role != entity.RoleAdmin {
			t.Errorf("role = %q, want admin", res.Role)
		}
	})

	t.Run("own role is locked", func(t *testing.T) {
		svc := NewAdminService(mock.NewMockUserRepository(gomock.NewController(t)))

		_, err := svc.UpdateUserRole(ctx, admin, admin.UserID, dto.UpdateRoleRequest{Role: entity.RoleMember})
		if !errors.Is(err, apperror.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockUserRepository(ctrl)
		svc := NewAdminService(repo)
		id := uuid.New()

		repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		if _, err := svc.UpdateUserRole(ctx, admin, id, dto.UpdateRoleRequest{Role: entity.RoleAdmin}); !errors.Is(err, apperror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("member is forbidden", func(t *testing.T) {
		svc := NewAdminService(mock.NewMockUserRepository(gomock.NewController(t)))

		if _, err := svc.UpdateUserRole(ctx, member, uuid.New(), dto.UpdateRoleRequest{Role: entity.RoleAdmin}); !errors.Is(err, apperror.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})
}
