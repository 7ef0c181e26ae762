package util

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrAssessmentCompleted   = errors.New("assessment already completed")
	ErrNoReportData          = errors.New("no report data available")
)
