package update

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/codesync/codesync/pkg/match"
	"github.com/codesync/codesync/pkg/plan"
)

func mockTrees(t *testing.T, sources, dests []string) {
	fs = afero.NewMemMapFs()
	for _, path := range sources {
		assert.NoError(t, afero.WriteFile(fs, "/src/"+path, []byte("x"), 0644))
	}
	for _, path := range dests {
		assert.NoError(t, afero.WriteFile(fs, "/dst/"+path, []byte("x"), 0644))
	}

	enumerate = func(root string, _ []string) ([]string, error) {
		if root == "/src" {
			return append([]string(nil), sources...), nil
		}
		return append([]string(nil), dests...), nil
	}
}

func TestRunCarryForward(t *testing.T) {
	mockTrees(t,
		[]string{"Kept.cs", "New.cs"},
		[]string{"app/Kept.cs", "app/New.cs"})

	prior := &plan.Plan{
		SourceDirectory: "/src",
		DestDirectory:   "/dst",
		Copies: []plan.Entry{
			{Source: "Kept.cs", Destination: "app/Kept.cs"},
		},
	}

	carry, result, err := Run(prior, Options{})
	assert.NoError(t, err)

	assert.Equal(t, []plan.Entry{
		{Source: "Kept.cs", Destination: "app/Kept.cs"},
	}, carry.Matches)
	assert.Empty(t, carry.Partial)

	// Only the residual source is rematched, and the carried-forward
	// destination never shows up as an orphan.
	assert.Equal(t, []match.Match{
		{Source: "New.cs", Dest: "app/New.cs"},
	}, result.Matches)
	assert.Empty(t, result.DestOrphans)
}

func TestRunDegradesMissingFiles(t *testing.T) {
	mockTrees(t,
		[]string{"StillHere.cs"},
		nil)

	prior := &plan.Plan{
		SourceDirectory: "/src",
		DestDirectory:   "/dst",
		Copies: []plan.Entry{
			{Source: "StillHere.cs", Destination: "app/Gone.cs"},
			{Source: "AlsoGone.cs", Destination: "app/AlsoGone.cs"},
			{Source: "OldPartial.cs"},
		},
	}

	carry, result, err := Run(prior, Options{})
	assert.NoError(t, err)

	assert.Empty(t, carry.Matches)
	assert.Equal(t, []plan.Entry{
		{Source: "StillHere.cs"},
		{},
		{Source: "OldPartial.cs"},
	}, carry.Partial)

	// The degraded source goes back into the matcher's queue.
	assert.Equal(t, []string{"StillHere.cs"}, result.SourceOrphans)
}

func TestRunCarriesIgnores(t *testing.T) {
	mockTrees(t,
		[]string{"Ignored.cs", "New.cs"},
		[]string{"app/IgnoredDest.cs", "app/New.cs"})

	prior := &plan.Plan{
		SourceDirectory: "/src",
		DestDirectory:   "/dst",
		Ignores: []plan.Entry{
			{Source: "Ignored.cs"},
			{Destination: "app/IgnoredDest.cs"},
		},
	}

	carry, result, err := Run(prior, Options{})
	assert.NoError(t, err)

	assert.Equal(t, []string{"Ignored.cs"}, carry.IgnoreSource)
	assert.Equal(t, []string{"app/IgnoredDest.cs"}, carry.IgnoreDest)

	assert.Equal(t, []match.Match{
		{Source: "New.cs", Dest: "app/New.cs"},
	}, result.Matches)
	assert.Empty(t, result.SourceOrphans)
	assert.Empty(t, result.DestOrphans)
}

func TestRunDiscardOlder(t *testing.T) {
	mockTrees(t,
		[]string{"Stale.cs", "Fresh.cs"},
		[]string{"app/Stale.cs", "app/Fresh.cs"})

	planTime := time.Now()
	assert.NoError(t, fs.Chtimes("/src/Stale.cs",
		planTime.Add(-time.Hour), planTime.Add(-time.Hour)))
	assert.NoError(t, fs.Chtimes("/src/Fresh.cs",
		planTime.Add(time.Hour), planTime.Add(time.Hour)))

	prior := &plan.Plan{
		SourceDirectory: "/src",
		DestDirectory:   "/dst",
		ModifiedTime:    &planTime,
		Copies: []plan.Entry{
			{Source: "Stale.cs", Destination: "app/Stale.cs"},
			{Source: "Fresh.cs", Destination: "app/Fresh.cs"},
		},
	}

	carry, result, err := Run(prior, Options{DiscardOlder: true})
	assert.NoError(t, err)

	// The stale entry is dropped from the carry, but both files stay
	// claimed, so the matcher neither rematches them nor reports orphans.
	assert.Equal(t, []plan.Entry{
		{Source: "Fresh.cs", Destination: "app/Fresh.cs"},
	}, carry.Matches)
	assert.Empty(t, result.Matches)
	assert.Empty(t, result.SourceOrphans)
	assert.Empty(t, result.DestOrphans)
}
