package responses

import (
	"time"

	"abrigo/backend/internal/models/entities"
	gormModels "abrigo/backend/internal/models/gorm"
)

type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	NationalID string    `json:"cpf"`
	Phone      string    `json:"phone"`
	Roles      []string  `json:"roles"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUserResponse(u *gormModels.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		NationalID: u.NationalID,
		Phone:      u.Phone,
		Roles:      u.Roles.Strings(),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// UserMembershipsResponse lists a user's rows across every scoped role next
// to the denormalized role list, so drift between the two is visible.
type UserMembershipsResponse struct {
	UserID      string                `json:"user_id"`
	Roles       []string              `json:"roles"`
	Memberships []entities.Membership `json:"memberships"`
}
