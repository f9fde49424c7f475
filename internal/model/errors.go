package model

import "errors"

// Domain errors. Callers wrap them with context and the HTTP layer maps
// them to status codes with errors.Is.
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrInvalidPatient     = errors.New("invalid patient")
	ErrInvalidDoctor      = errors.New("invalid doctor")
	ErrInvalidUser        = errors.New("invalid user")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrDuplicateAppointment = errors.New("duplicate appointment")
	ErrDuplicateEmail       = errors.New("email already registered")

	ErrUserServiceUnavailable = errors.New("user service unavailable, try again later")
	ErrForbidden              = errors.New("forbidden")
)
