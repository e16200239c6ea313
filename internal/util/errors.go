package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrNoQuestions        = errors.New("exercise has no usable questions")
	ErrSessionNotFound    = errors.New("session not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAttemptFinalized   = errors.New("attempt already completed")
	ErrUnknownSection     = errors.New("unknown test section")
	ErrUnknownProgram     = errors.New("no courses for that program and year")
	ErrInvalidProgress    = errors.New("progress must be a number between 0 and 100")
	ErrEnrollmentNotFound = errors.New("no active enrollment for that course")
)
