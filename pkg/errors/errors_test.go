package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContext(t *testing.T) {
	root := New("boom")
	wrapped := WithContext(WithContext(root, "read file"), "load plan")

	assert.Equal(t, "load plan: read file: boom", wrapped.Error())
	assert.Equal(t, root, RootCause(wrapped))
	assert.Equal(t, root, RootCause(root))
}

func TestGetPrintableMessage(t *testing.T) {
	friendly := NewFriendlyError("The %s is broken.", "plan")
	assert.Equal(t, "The plan is broken.", GetPrintableMessage(friendly))

	// Context wrapping doesn't hide the friendly message.
	wrapped := WithContext(friendly, "load plan")
	assert.Equal(t, "The plan is broken.", GetPrintableMessage(wrapped))

	plain := WithContext(New("boom"), "load plan")
	assert.Equal(t, "load plan: boom", GetPrintableMessage(plain))
}

func TestFileNotFound(t *testing.T) {
	err := FileNotFound{Path: "/some/path"}
	assert.Equal(t, `"/some/path" does not exist`, err.Error())
}

func TestInvalidPlanIsFriendly(t *testing.T) {
	err := InvalidPlan{Path: "/plan.xml", Reason: "missing SourceDirectory"}
	assert.Contains(t, GetPrintableMessage(err), "/plan.xml")
	assert.Contains(t, GetPrintableMessage(err), "missing SourceDirectory")
}
