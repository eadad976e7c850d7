package dto

type UserURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member"`
}
