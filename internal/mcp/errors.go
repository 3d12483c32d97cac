package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/domain/repaircase"
	"github.com/rpggio/repairdesk/internal/estimator"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to
// INTERNAL without exposing their text.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repaircase.ErrCaseNotFound):
		return &APIError{Code: "CASE_NOT_FOUND", Message: "case not found", RecoveryHint: "Use list_cases to find a valid id"}
	case errors.Is(err, repaircase.ErrStoreNotFound):
		return &APIError{Code: "STORE_NOT_FOUND", Message: "repair history has not been created yet", RecoveryHint: "Save a case first"}
	case errors.Is(err, repaircase.ErrQueryRequired):
		return &APIError{Code: "QUERY_REQUIRED", Message: "query is required", RecoveryHint: "Describe the symptom or work, e.g. ナット交換"}
	case errors.Is(err, record.ErrInvalidInput),
		errors.Is(err, estimator.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check the tool input schema"}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}
