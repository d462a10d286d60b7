package request

// SaveUserRequest is the first-contact profile; unknown fields land in Profile.
type SaveUserRequest struct {
	Name    string         `json:"name" validate:"max=200"`
	Image   string         `json:"image" validate:"omitempty,max=2048"`
	Profile map[string]any `json:"-"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer seller admin"`
}
