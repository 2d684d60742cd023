package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBookmarkExists     = errors.New("bookmark already exists")
	ErrPostingExists      = errors.New("posting already exists")
)
