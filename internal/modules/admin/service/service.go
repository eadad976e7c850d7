package service

import (
	"context"
	"fmt"

	"anoa.com/bookcommunity/internal/modules/admin/dto"
	userDto "anoa.com/bookcommunity/internal/modules/user/dto"
	"anoa.com/bookcommunity/internal/modules/user/repository"
	"anoa.com/bookcommunity/internal/policy"
	"anoa.com/bookcommunity/pkg/apperror"
	commonDto "anoa.com/bookcommunity/pkg/dto"
	"anoa.com/bookcommunity/pkg/database"
	"github.com/google/uuid"
)

type AdminService interface {
	ListUsers(ctx context.Context, actor policy.Actor, page commonDto.PageQuery) (*commonDto.Paginated[userDto.UserResponse], error)
	UpdateUserRole(ctx context.Context, actor policy.Actor, userID uuid.UUID, req dto.UpdateRoleRequest) (*userDto.UserResponse, error)
}

type adminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) ListUsers(ctx context.Context, actor policy.Actor, page commonDto.PageQuery) (*commonDto.Paginated[userDto.UserResponse], error) {
	if err := policy.Authorize(actor, policy.ActionRead, policy.ResourceUser, nil); err != nil {
		return nil, err
	}

	page = page.Normalize()
	users, total, err := s.userRepo.FindAll(ctx, page.Offset(), page.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	data := make([]userDto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, *userDto.NewUserResponse(&users[i]))
	}

	return &commonDto.Paginated[userDto.UserResponse]{
		Data: data,
		Meta: commonDto.NewPaginationMeta(page, total),
	}, nil
}

// UpdateUserRole promotes or demotes a user. Admins cannot change their own role.
func (s *adminService) UpdateUserRole(ctx context.Context, actor policy.Actor, userID uuid.UUID, req dto.UpdateRoleRequest) (*userDto.UserResponse, error) {
	if err := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceUser, nil); err != nil {
		return nil, err
	}
	if actor.UserID == userID {
		return nil, apperror.Validation("role: You cannot change your own role.")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	role, err := s.userRepo.FindRoleByName(ctx, req.Role)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.Validation(fmt.Sprintf("role: %q is not a valid choice.", req.Role))
		}
		return nil, err
	}

	if user.RoleID == nil || *user.RoleID != role.ID {
		if err := s.userRepo.UpdateRole(ctx, user.ID, role.ID); err != nil {
			if database.IsNotFound(err) {
				return nil, fmt.Errorf("user: %w", apperror.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to update role: %w", err)
		}
	}

	user.RoleID = &role.ID
	user.Role = *role
	return userDto.NewUserResponse(user), nil
}
