package services

import "github.com/pkg/errors"

var (
	ErrArticleNotFound    = errors.New("article not found")
	ErrEmptyTitle         = errors.New("article title is empty")
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrEmptyTagName       = errors.New("tag name is empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdmin           = errors.New("user is not an admin")
)
