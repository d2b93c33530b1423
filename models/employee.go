package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Employee is an internal staff identity. Rows are provisioned by an
// administrator outside of this service; the application only ever reads
// them (login lookup, bearer resolution).
type Employee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"column:name;index" json:"name"`
	// DateOfBirth is stored canonically as YYYY-MM-DD.
	DateOfBirth string `gorm:"column:date_of_birth" json:"dateOfBirth"`
	PINHash     string `gorm:"column:pin_hash" json:"-"`
	Role        string `gorm:"column:role;default:staff" json:"role"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"isActive"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) IsAdmin() bool { return e.Role == RoleAdmin }
