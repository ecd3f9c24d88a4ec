// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
	"io/fs"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Randomizer log
	OpLogOpen   Op = "open log"
	OpLogParse  Op = "read log"
	OpLogDetect Op = "find log"
	OpLogWatch  Op = "watch log folder"

	// Tracked data
	OpDataSave Op = "save tracked data"
	OpDataLoad Op = "load tracked data"

	// Settings
	OpLanguageLoad Op = "load language"
	OpThemeLoad    Op = "load theme"
	OpConfigLoad   Op = "load config"
	OpStateLoad    Op = "load saved state"
	OpStateSave    Op = "save state"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, cause(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, cause(err))
}

// cause shortens the common file errors, whose full text repeats the path.
func cause(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.New("file not found")
	case errors.Is(err, fs.ErrPermission):
		return errors.New("permission denied")
	}
	return err
}
