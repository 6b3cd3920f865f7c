package dto

import (
	"time"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
)

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterUserRequest is the payload for creating a user account.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN ENGINEER"`
}

// ListUsersParams paginates user listing.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// UserResponse is the API representation of a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListUsersResponse wraps a user listing.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse maps a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
