package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors into AppErrors.

// ErrNotFound wraps a "record not found" repository error into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a duplicate-record error into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict builds a domain-specific 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the current state does
// not allow.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// Predefined auth errors. The login failure messages intentionally
// distinguish inactive and unverified accounts from bad credentials;
// existing clients depend on that granularity even though it discloses
// account state.
var (
	ErrInvalidCredentials = New(
		CodeInvalidCredentials,
		"auth",
		"Invalid email/phone or password",
		http.StatusUnauthorized,
	)

	ErrAccountInactive = New(
		CodeAccountInactive,
		"auth",
		"Account is not active",
		http.StatusUnauthorized,
	)

	ErrEmailNotVerified = New(
		CodeEmailNotVerified,
		"auth",
		"Please verify your email address before logging in",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = New(
		CodeInvalidToken,
		"auth",
		"Invalid or expired token",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = New(
		CodeInvalidToken,
		"auth",
		"Invalid refresh token",
		http.StatusUnauthorized,
	)

	ErrEmailAlreadyExists = New(
		CodeAlreadyExists,
		"user",
		"Email already exists",
		http.StatusConflict,
	)

	ErrPhoneAlreadyExists = New(
		CodeAlreadyExists,
		"user",
		"Phone number already exists",
		http.StatusConflict,
	)

	ErrWeakPassword = New(
		CodeValidationFailed,
		"user",
		"Password must be at least 6 characters",
		http.StatusBadRequest,
	)
)
