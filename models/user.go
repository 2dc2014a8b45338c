package models

import "gorm.io/gorm"

const RoleAdmin = "admin"

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;type:varchar(32);not null"`
	Password string `gorm:"type:varchar(128);not null"` // bcrypt hash
	Role     string `gorm:"type:varchar(16);not null;default:'user'"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
