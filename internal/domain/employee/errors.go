package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrInvalidStatus    = errors.New("status must be active or inactive")
	ErrCannotDeleteSelf = errors.New("cannot delete your own employee record")
)
