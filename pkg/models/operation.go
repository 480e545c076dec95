package models

import (
	"time"
)

// CompareOperation represents a single comparison run configuration
type CompareOperation struct {
	ID              string
	LeftSource      string // original specifier (local path or repository URL)
	RightSource     string
	LeftPath        string // resolved local directory
	RightPath       string
	LeftSubdir      string
	RightSubdir     string
	IncludePatterns []string
	ExcludePatterns []string
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *CompareOperation) Validate() error {
	if op.LeftSource == "" {
		return &ValidationError{Field: "LeftSource", Message: "left source is required"}
	}
	if op.RightSource == "" {
		return &ValidationError{Field: "RightSource", Message: "right source is required"}
	}
	if op.LeftPath == "" {
		return &ValidationError{Field: "LeftPath", Message: "left path is not resolved"}
	}
	if op.RightPath == "" {
		return &ValidationError{Field: "RightPath", Message: "right path is not resolved"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
