package schema

import "errors"

var (
	// ErrInvalidCredentials is returned by login when no account matches the email and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when an operation needs a session and there is none.
	ErrUnauthorized = errors.New("not authenticated")
	// ErrForbidden is returned when the session role may not perform an operation.
	ErrForbidden = errors.New("forbidden")
	// ErrEmployeeNotFound is returned when no employee has the requested id.
	ErrEmployeeNotFound = errors.New("employee not found")
)
