// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/users/auth/model"
)

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterDTO struct {
	Email    string   `json:"email" validate:"required,email,max=120"`
	FullName string   `json:"full_name" validate:"required,max=100"`
	Password string   `json:"password" validate:"required,min=8,max=72"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,oneof=admin staff teacher parent principal vendor"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	UserID       uuid.UUID  `json:"user_id"`
	UserCenterID *uuid.UUID `json:"user_center_id,omitempty"`
	UserEmail    string     `json:"user_email"`
	UserFullName string     `json:"user_full_name"`
	UserRoles    []string   `json:"user_roles"`
	UserIsActive bool       `json:"user_is_active"`
}

func ToUserResponse(m model.User) UserResponse {
	return UserResponse{
		UserID:       m.UserID,
		UserCenterID: m.UserCenterID,
		UserEmail:    m.UserEmail,
		UserFullName: m.UserFullName,
		UserRoles:    []string(m.UserRoles),
		UserIsActive: m.UserIsActive,
	}
}
