// file: internals/features/users/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "hoaportal_backend/internals/features/users/model"
)

////////////////////////////////////////////////////////////////////////////////
// AUTH - DTO
////////////////////////////////////////////////////////////////////////////////

type RegisterDTO struct {
	UserEmail     string  `json:"user_email" validate:"required,email"`
	UserFullName  string  `json:"user_full_name" validate:"required,min=2,max=120"`
	UserPassword  string  `json:"user_password" validate:"required,min=8,max=72"`
	UserLotNumber *string `json:"user_lot_number,omitempty" validate:"omitempty,max=20"`
}

type LoginDTO struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type GoogleLoginDTO struct {
	IDToken string `json:"id_token" validate:"required"`
}

type TokenPairResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

////////////////////////////////////////////////////////////////////////////////
// USER - DTO
////////////////////////////////////////////////////////////////////////////////

type UserResponse struct {
	UserID               uuid.UUID `json:"user_id"`
	UserEmail            string    `json:"user_email"`
	UserFullName         string    `json:"user_full_name"`
	UserRoles            []string  `json:"user_roles"`
	UserLotNumber        *string   `json:"user_lot_number,omitempty"`
	UserIsBillingContact bool      `json:"user_is_billing_contact"`
	UserIsActive         bool      `json:"user_is_active"`
	UserCreatedAt        time.Time `json:"user_created_at"`
}

type UserUpdateDTO struct {
	UserFullName         *string `json:"user_full_name,omitempty" validate:"omitempty,min=2,max=120"`
	UserLotNumber        *string `json:"user_lot_number,omitempty" validate:"omitempty,max=20"`
	UserIsBillingContact *bool   `json:"user_is_billing_contact,omitempty"`
	UserIsActive         *bool   `json:"user_is_active,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToUserResponse(m model.User) UserResponse {
	return UserResponse{
		UserID:               m.UserID,
		UserEmail:            m.UserEmail,
		UserFullName:         m.UserFullName,
		UserRoles:            []string(m.UserRoles),
		UserLotNumber:        m.UserLotNumber,
		UserIsBillingContact: m.UserIsBillingContact,
		UserIsActive:         m.UserIsActive,
		UserCreatedAt:        m.UserCreatedAt,
	}
}

func ToUserResponses(list []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToUserResponse(m))
	}
	return out
}
