// Package errors provides structured error handling for the application.
// It defines AppError type with error codes for consistent API responses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess       = 0
	CodeUnknown       = 1000
	CodeInvalidParams = 1001
	CodeNotFound      = 1002

	// Input validation errors (1100-1199)
	CodeEmptyClipList    = 1100
	CodeBadDimensions    = 1101
	CodeBadCaptionTiming = 1102
	CodeEmptyText        = 1103
	CodeUnknownStyle     = 1104

	// Render errors (1200-1299)
	CodeRenderFailed = 1200
	CodeTextLayout   = 1201
	CodeEncodeFailed = 1202
	CodePlanConsumed = 1203

	// Resource/media errors (1300-1399)
	CodeProbeFailed    = 1300
	CodeFileNotFound   = 1301
	CodeFileWriteError = 1302

	// Script generation errors (1400-1499)
	CodeScriptFailed   = 1400
	CodeKeywordsFailed = 1401
	CodeLLMQuota       = 1402

	// Asset sourcing errors (1500-1599)
	CodeAssetSearchFailed = 1500
	CodeAssetDownload     = 1501
	CodeMusicNotFound     = 1502

	// Storage errors (1600-1699)
	CodeDBError      = 1600
	CodeUploadFailed = 1601
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsInput reports whether err is an input validation error, i.e. one that is
// raised before any compositing work begins.
func IsInput(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return (appErr.Code >= 1100 && appErr.Code < 1200) || appErr.Code == CodeInvalidParams
	}
	return false
}

// GetCode extracts error code from error, returns CodeUnknown if not AppError
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Predefined common errors
var (
	ErrInvalidParams = New(CodeInvalidParams, "Invalid parameters")
	ErrNotFound      = New(CodeNotFound, "Resource not found")

	// Input
	ErrEmptyClipList    = New(CodeEmptyClipList, "Clip list is empty")
	ErrBadDimensions    = New(CodeBadDimensions, "Dimensions must be positive")
	ErrBadCaptionTiming = New(CodeBadCaptionTiming, "Caption start must precede end")
	ErrEmptyText        = New(CodeEmptyText, "Text must not be empty")

	// Render
	ErrRenderFailed = New(CodeRenderFailed, "Render failed")
	ErrPlanConsumed = New(CodePlanConsumed, "Render plan already consumed")

	// Resource
	ErrProbeFailed  = New(CodeProbeFailed, "Failed to probe media file")
	ErrFileNotFound = New(CodeFileNotFound, "File not found")

	// Sourcing
	ErrScriptFailed  = New(CodeScriptFailed, "Script generation failed")
	ErrAssetDownload = New(CodeAssetDownload, "Asset download failed")
	ErrMusicNotFound = New(CodeMusicNotFound, "No matching music track found")

	// Storage
	ErrDBError = New(CodeDBError, "Database error")
)
