package response

import (
	"time"

	"plantnet/internal/data/entity"
)

type UserResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name,omitempty"`
	Image     string            `json:"image,omitempty"`
	Role      entity.UserRole   `json:"role"`
	Status    entity.RoleStatus `json:"status"`
	Profile   map[string]any    `json:"profile,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// RoleResponse carries a null role when the user is unknown.
type RoleResponse struct {
	Role *entity.UserRole `json:"role"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Image:     user.Image,
		Role:      user.Role,
		Status:    user.Status,
		Profile:   user.Profile,
		CreatedAt: user.CreatedAt,
	}
}
