package service

import "errors"

// Messages double as the envelope message the client shows.
var (
	ErrEmailTaken         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrProjectLimit       = errors.New("Project limit reached")
	ErrProjectNotFound    = errors.New("Project not found")
	ErrTaskNotFound       = errors.New("Task not found")
)
