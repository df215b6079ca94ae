package gorm

import (
	"abrigo/backend/internal/constants"
	"time"
)

// User is the canonical identity record. Roles is the denormalized role list
// kept in sync by the membership lifecycle service.
type User struct {
	ID         string             `gorm:"column:id;primaryKey;type:uuid"`
	Name       string             `gorm:"column:name"`
	Email      string             `gorm:"column:email"`
	NationalID string             `gorm:"column:cpf;uniqueIndex"`
	Phone      string             `gorm:"column:phone"`
	Roles      constants.RoleList `gorm:"column:roles;type:text;not null;default:''"`
	IsActive   bool               `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
