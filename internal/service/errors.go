package service

import (
	"net/http"

	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/pkg/apperror"
)

// Client-facing domain errors. A missing rule is a deployment defect and maps
// to 404 distinctly from ineligibility outcomes, which map to 400.
var (
	ErrRuleNotFound           = apperror.New(http.StatusNotFound, "daily reward rule not found", nil)
	ErrTaskNotFound           = apperror.New(http.StatusNotFound, "task not found or inactive", nil)
	ErrTaskExpired            = apperror.New(http.StatusBadRequest, "task has expired", nil)
	ErrAlreadyCompleted       = apperror.New(http.StatusBadRequest, "task already completed", nil)
	ErrCompletionLimitReached = apperror.New(http.StatusBadRequest, "task completion limit reached", nil)
	ErrEmailTaken             = apperror.New(http.StatusBadRequest, "email already registered", nil)
	ErrInvalidCredentials     = apperror.New(http.StatusUnauthorized, "invalid credentials", nil)
	ErrRuleKeyTaken           = apperror.New(http.StatusBadRequest, "rule key already exists", nil)
)

// RequirementsNotMetError carries the evaluated progress so the caller can
// show how far the user is from claiming.
type RequirementsNotMetError struct {
	Progress dto.TaskProgress
}

func (e *RequirementsNotMetError) Error() string {
	return "requirements not met: " + e.Progress.Description
}

func (e *RequirementsNotMetError) Unwrap() error {
	return apperror.ErrBadRequest
}
