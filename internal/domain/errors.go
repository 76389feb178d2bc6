package domain

import "errors"

// Domain errors
var (
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternalError     = errors.New("internal error")
	ErrUserNotFound      = errors.New("user not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")

	ErrDailyRecordNotFound  = errors.New("daily record not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrExtraEarningNotFound = errors.New("extra earning not found")
	ErrCarConfigNotFound    = errors.New("car config not found")
	ErrNoActiveCarConfig    = errors.New("no active car config")

	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrNegativeValue      = errors.New("value must not be negative")
	ErrCategoryRequired   = errors.New("category is required")
	ErrCategoryTooLong    = errors.New("category exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrModelRequired      = errors.New("vehicle model is required")
	ErrModelTooLong       = errors.New("vehicle model exceeds maximum length")
	ErrInvalidPeriod      = errors.New("invalid period")
)
