// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Acquisition cycle steps
	OpSearch   Op = "search catalog"
	OpSelect   Op = "select candidate"
	OpDownload Op = "download audio"
	OpTag      Op = "write tags"
	OpPlace    Op = "move file to destination"

	// Settings
	OpSettingsLoad   Op = "load settings"
	OpSettingsSave   Op = "save settings"
	OpSettingsCreate Op = "configure settings"

	// History
	OpHistoryOpen   Op = "open history"
	OpHistoryRecord Op = "record acquisition"
	OpHistoryList   Op = "list history"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
