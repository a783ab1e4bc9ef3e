package model

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed caller input. It is raised before any
// network call is made and is always recoverable by the caller.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order request: %s", strings.Join(e.Fields, "; "))
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AuthError covers a missing, invalid or expired token or login code.
// Recovering requires a fresh login cycle.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func NewAuthError(format string, args ...interface{}) *AuthError {
	return &AuthError{Message: fmt.Sprintf(format, args...)}
}

// BrokerError is any failure reported by or around the upstream call:
// network errors, rejected orders, malformed responses. Never retried.
type BrokerError struct {
	ErrorType string // upstream error_type when known, e.g. OrderException
	Message   string
}

func (e *BrokerError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("%s: %s", e.ErrorType, e.Message)
	}
	return e.Message
}

func NewBrokerError(errorType, format string, args ...interface{}) *BrokerError {
	return &BrokerError{ErrorType: errorType, Message: fmt.Sprintf(format, args...)}
}

// ConfigError means required credentials or settings are absent at startup.
// It is fatal: the process must not start.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}
