package domain

import "errors"

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrDuplicateEmail     = errors.New("customer with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user account is disabled")
	ErrPasswordMismatch   = errors.New("the two password fields didn't match")
	ErrInvalidSpreadsheet = errors.New("invalid spreadsheet")
	ErrInvalidImage       = errors.New("file is not a valid image")
	ErrTokenRevoked       = errors.New("token has been revoked")
)
