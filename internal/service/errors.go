package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrPasswordPair       = errors.New("please provide both current password and new password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSelfFollow         = errors.New("can not follow/unfollow yourself")
	ErrForbidden          = errors.New("not allowed")
	ErrEmptyPost          = errors.New("post must have a text or image")
	ErrEmptyComment       = errors.New("text field is required")
)
