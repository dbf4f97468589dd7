// Package core provides the catalog entities shown by the admin list pages.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Codes are grouped by category:
//
// # Entity Errors (TBL001-TBL099)
//
//	TBL001 - Unknown entity: The requested list does not exist
//	         Patterns: "unknown entity"
//
//	TBL002 - Unknown row: The row is not part of the list
//	         Patterns: "row not found"
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Unknown column: The column does not exist in this list
//	         Patterns: "unknown column"
//
//	COL002 - Not sortable: The column cannot be sorted
//	         Patterns: "column not sortable"
//
//	COL003 - Not filterable: The column cannot be filtered
//	         Patterns: "column not filterable"
//
// # Input Errors (VAL001-VAL099)
//
//	VAL001 - Invalid page size
//	         Patterns: "invalid page size", "page size too large"
//
//	VAL002 - Invalid page
//	         Patterns: "invalid page"
//
//	VAL003 - Invalid filter
//	         Patterns: "invalid filter"
//
//	VAL004 - Invalid request body
//	         Patterns: "invalid request"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Connection refused      Patterns: "connection refused"
//	DB002 - Connection reset        Patterns: "connection reset"
//	DB003 - Missing table           Patterns: "does not exist"
//	DB004 - Timeout                 Patterns: "timeout", "context deadline exceeded"
//
// # Preference Errors (PREF001-PREF099)
//
//	PREF001 - Preferences unavailable  Patterns: "preference", "pudge"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Unsupported format     Patterns: "unsupported export format"
//	EXP002 - Nothing selected       Patterns: "no rows selected"
//	EXP003 - Export failed          Patterns: "export"
//	EXP004 - Unsupported scope      Patterns: "unsupported export scope"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled      Patterns: "context canceled"
//	REQ002 - Session missing        Patterns: "session not found"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests     Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the application logs
// for the original technical error.
//
// Patterns are matched case-insensitively using strings.Contains and the
// first match wins, so more specific patterns come first.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

func pat(pattern, message, action, code string) errorPattern {
	return errorPattern{pattern: pattern, msg: UserMessage{Message: message, Action: action, Code: code}}
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Entity and Column Errors
	// =========================================================================
	pat("unknown entity", "This list does not exist", "Pick a list from the dashboard", "TBL001"),
	pat("row not found", "This row is no longer part of the list", "Reload the page to refresh the rows", "TBL002"),
	pat("unknown column", "This column does not exist in the list", "Reload the page to refresh the columns", "COL001"),
	pat("column not sortable", "This column cannot be sorted", "Sort by another column", "COL002"),
	pat("column not filterable", "This column cannot be filtered", "Use the search box instead", "COL003"),

	// =========================================================================
	// Input Errors
	// =========================================================================
	pat("invalid page size", "Invalid number of rows per page", "Choose a page size between 1 and the maximum", "VAL001"),
	pat("page size too large", "Too many rows per page", "Choose a smaller page size", "VAL001"),
	pat("invalid page", "Invalid page number", "Page numbers start at 1", "VAL002"),
	pat("invalid filter", "The filter could not be read", "Use the form operator:value, for example gt:200", "VAL003"),
	pat("invalid request", "The request could not be read", "Reload the page and try again", "VAL004"),

	// =========================================================================
	// Export Errors
	// =========================================================================
	pat("unsupported export format", "This export format is not supported", "Export as xlsx or csv", "EXP001"),
	pat("unsupported export scope", "This export scope is not supported", "Export all rows or the selected ones", "EXP004"),
	pat("no rows selected", "No rows are selected", "Select rows or export the whole list", "EXP002"),

	// =========================================================================
	// Database Errors
	// =========================================================================
	pat("connection refused", "Unable to connect to database", "Please try again in a few moments", "DB001"),
	pat("connection reset", "Database connection was interrupted", "Please try again", "DB002"),
	pat("does not exist", "The catalog table is missing", "Run the database migrations", "DB003"),
	pat("timeout", "Operation timed out", "Please try again later", "DB004"),
	pat("context deadline exceeded", "Operation timed out", "Please try again later", "DB004"),

	// =========================================================================
	// Request Errors
	// =========================================================================
	pat("context canceled", "Request was cancelled", "Please try again", "REQ001"),
	pat("session not found", "Your session has expired", "Reload the page", "REQ002"),

	// =========================================================================
	// Preferences, export fallbacks and rate limiting
	// =========================================================================
	pat("preference", "Column preferences could not be saved", "Your choice applies until the page is reloaded", "PREF001"),
	pat("pudge", "Column preferences could not be saved", "Your choice applies until the page is reloaded", "PREF001"),
	pat("export", "The export could not be created", "Please try again", "EXP003"),
	pat("rate limit", "Too many requests", "Please wait a moment before trying again", "RATE001"),
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback message with code ERR000 is returned.
//
// Example:
//
//	msg := MapError(fmt.Errorf("%w: price", datatable.ErrNotSortable))
//	// msg.Code == "COL002"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern
// rather than the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
