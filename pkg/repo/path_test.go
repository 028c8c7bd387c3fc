package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		exp   string
	}{
		{"src/ui/Button.cs", "src/ui/Button.cs"},
		{`src\ui\Button.cs`, "src/ui/Button.cs"},
		{`mixed/sep\Button.cs`, "mixed/sep/Button.cs"},
		{"Button.cs", "Button.cs"},
		{"", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.exp, Normalize(test.input))
	}
}

func TestBase(t *testing.T) {
	tests := []struct {
		input string
		exp   string
	}{
		{"src/ui/Button.cs", "Button.cs"},
		{`src\ui\Button.cs`, "Button.cs"},
		{"Button.cs", "Button.cs"},
	}

	for _, test := range tests {
		assert.Equal(t, test.exp, Base(test.input))
	}
}

func TestComponents(t *testing.T) {
	assert.Equal(t, []string{"src", "ui", "Button.cs"},
		Components("src/ui/Button.cs"))
	assert.Equal(t, []string{"src", "ui", "Button.cs"},
		Components(`src\ui\Button.cs`))
	assert.Equal(t, []string{"Button.cs"}, Components("Button.cs"))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		exp  bool
	}{
		{"src/ui/Button.cs", "src/ui/Button.cs", true},
		{"src/ui/Button.cs", "SRC/UI/BUTTON.CS", true},
		{`src\ui\Button.cs`, "src/ui/Button.cs", true},
		{"src/ui/Button.cs", "src/ui/Label.cs", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.exp, Equal(test.a, test.b),
			"%q vs %q", test.a, test.b)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("SRC/UI/Button.cs"), Fold(`src\ui\button.cs`))
	assert.NotEqual(t, Fold("src/a.cs"), Fold("src/b.cs"))
}
