package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrStoreFailure           = errors.New("store failure")
	ErrDuplicateUser          = errors.New("user already exists")
	ErrValidation             = errors.New("validation failed")
	ErrUnknownBlock           = errors.New("unknown block")
	ErrInvalidRole            = errors.New("invalid user type, must be 'student' or 'warden'")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountSetupIncomplete = errors.New("account setup incomplete, please contact administrator")
	ErrForbidden              = errors.New("forbidden: user does not have permission for this action")
	ErrComplaintNotFound      = errors.New("complaint not found")
)

func storeFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}
