package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		exp  int
	}{
		{
			name: "Identical",
			a:    "src/ui/Button.cs",
			b:    "src/ui/Button.cs",
			exp:  -3,
		},
		{
			name: "SameNameDifferentDir",
			a:    "src/ui/Button.cs",
			b:    "tests/Button.cs",
			exp:  0,
		},
		{
			name: "SharedSuffix",
			a:    "src/ui/Button.cs",
			b:    "app/ui/Button.cs",
			exp:  -1,
		},
		{
			name: "CaseInsensitive",
			a:    "SRC/UI/Button.cs",
			b:    "src/ui/button.cs",
			exp:  -3,
		},
		{
			name: "ShorterPathComparesCommonTail",
			a:    "Button.cs",
			b:    "deeply/nested/Button.cs",
			exp:  -1,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, similarity(test.a, test.b))
		})
	}
}

func TestRankCandidates(t *testing.T) {
	ranked := rankCandidates("src/ui/Button.cs", []string{
		"tests/Button.cs",
		"app/ui/Button.cs",
		"src/ui/Button.cs",
	})
	assert.Equal(t, []string{
		"src/ui/Button.cs",
		"app/ui/Button.cs",
		"tests/Button.cs",
	}, ranked)
}

func TestRankCandidatesStable(t *testing.T) {
	// Equally ranked candidates keep their insertion order.
	ranked := rankCandidates("src/Button.cs", []string{
		"a/Button.cs",
		"b/Button.cs",
		"c/Button.cs",
	})
	assert.Equal(t, []string{
		"a/Button.cs",
		"b/Button.cs",
		"c/Button.cs",
	}, ranked)
}

func TestRankCandidatesShortList(t *testing.T) {
	single := []string{"only/Button.cs"}
	assert.Equal(t, single, rankCandidates("src/Button.cs", single))
	assert.Nil(t, rankCandidates("src/Button.cs", nil))
}
