package themecheck

import "fmt"

// MalformedColorError reports color text that is not a valid HSL triple.
type MalformedColorError struct {
	Text   string // The offending text
	Reason string // What was wrong with it
}

// Error implements the error interface.
func (e *MalformedColorError) Error() string {
	return fmt.Sprintf("malformed color %q: %s", e.Text, e.Reason)
}

// MissingRoleError reports a theme that lacks a role a ColorPair needs.
type MissingRoleError struct {
	Theme string
	Role  string
}

// Error implements the error interface.
func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("theme %q has no %q role", e.Theme, e.Role)
}

// ExtractionError reports theme data that could not be located or parsed
// in a source text.
type ExtractionError struct {
	Identifier string // Declared name being extracted, e.g. "THEMES"
	Reason     string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.Identifier, e.Reason)
}

// SyncError reports a synchronization step that cannot run, such as
// applying a snapshot that was never generated.
type SyncError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %s", e.Path, e.Reason)
}

// AuditFailure carries the exit code of an audit in which at least one
// pair failed. It is not an execution error: the audit ran to completion.
type AuditFailure struct {
	Code int
}

// Error implements the error interface.
func (e *AuditFailure) Error() string {
	return fmt.Sprintf("audit failed (exit code %d)", e.Code)
}
