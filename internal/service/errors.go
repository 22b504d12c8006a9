package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrProtectedUser      = errors.New("the admin account cannot be removed")
	ErrIncompleteForm     = errors.New("required field is empty")
	ErrInvalidPrice       = errors.New("price must be a non-negative number")
	ErrNoRecords          = errors.New("no records to delete")
	ErrIndexOutOfRange    = errors.New("record index out of range")
	ErrForbidden          = errors.New("forbidden: user does not have permission for this action")
)
