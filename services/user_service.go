package services

import (
	"context"

	"blogapp/models"
	"blogapp/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// EnsureAdmin creates the admin account on first start. An existing user
// with that name is left untouched.
func EnsureAdmin(ctx context.Context, username, password string) error {
	var user models.User
	err := orm(ctx).Where("username = ?", username).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "look up admin")
	}
	if password == "" {
		return errors.New("admin password not configured")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}
	user = models.User{Username: username, Password: hash, Role: models.RoleAdmin}
	return errors.Wrap(orm(ctx).Create(&user).Error, "create admin")
}

// Authenticate checks the credentials of an admin login.
func Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := orm(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "look up user")
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return &user, nil
}

func FindAdmin(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := orm(ctx).Where("id = ? AND role = ?", id, models.RoleAdmin).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotAdmin
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load admin %d", id)
	}
	return &user, nil
}
