// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "config")
	Action  string // Action being performed (e.g., "init")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
	Code    int    // Exit code; 0 means ExitGeneralError
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ReportedError marks a failure that has already been shown to the user.
// main exits with Code without printing it again.
type ReportedError struct {
	Err  error
	Code int
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// =============================================================================
// HELPERS
// =============================================================================

// ExitCode maps an error returned by a handler to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var reported *ReportedError
	if errors.As(err, &reported) && reported.Code != 0 {
		return reported.Code
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code != 0 {
		return cmdErr.Code
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return ExitUsageError
	}
	return ExitGeneralError
}

// Reported reports whether err was already printed by its handler.
func Reported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}
