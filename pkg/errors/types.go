package errors

import (
	"fmt"
)

// MissingFieldError represents a missing required field.
type MissingFieldError struct {
	Field string
}

func (err MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", err.Field)
}

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// InvalidPlan represents a plan document that can't be used because it's
// structurally broken, such as missing the root element or the repository
// directories.
type InvalidPlan struct {
	Path   string
	Reason string
}

func (err InvalidPlan) Error() string {
	return err.FriendlyMessage()
}

// FriendlyMessage returns the user-facing message.
func (err InvalidPlan) FriendlyMessage() string {
	return fmt.Sprintf("The plan file %q can't be loaded: %s.\n"+
		"If the file was edited by hand, restore the <CodeSync> root element "+
		"and the <SourceDirectory> and <DestDirectory> entries.",
		err.Path, err.Reason)
}
