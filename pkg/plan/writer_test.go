package plan

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/codesync/codesync/pkg/match"
)

func TestWriterDocument(t *testing.T) {
	fs = afero.NewMemMapFs()
	Clock = clockwork.NewFakeClockAt(
		time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC))

	w, err := Create("/plan.xml", "/src", "/dst")
	assert.NoError(t, err)

	w.SectionHeader("Hand-edit below.")
	w.Copy(Entry{Source: "src/Program.cs", Destination: "app/Program.cs"})
	w.Copy(Entry{Source: "src/Lost.cs"})
	w.IgnoreSource("src/Generated.cs")
	w.Ambiguous("src/Button.cs", []string{"a/Button.cs", "b/Button.cs"})
	w.CommentedIgnoreDest("app/Legacy.cs")
	assert.NoError(t, w.Close())

	exp := `<?xml version="1.0" encoding="UTF-8"?>
<CodeSync>
  <SourceDirectory>/src</SourceDirectory>
  <DestDirectory>/dst</DestDirectory>
  <ModifiedTime>2020-01-02T03:04:05Z</ModifiedTime>

  <!-- Hand-edit below. -->

  <Copy>
    <Source>src/Program.cs</Source>
    <Destination>app/Program.cs</Destination>
  </Copy>
  <Copy>
    <Source>src/Lost.cs</Source>
    <Destination></Destination>
  </Copy>
  <Ignore>
    <Source>src/Generated.cs</Source>
  </Ignore>
  <Ignore>
    <Source>src/Button.cs</Source>
    <!--<Destination>a/Button.cs</Destination>-->
    <!--<Destination>b/Button.cs</Destination>-->
  </Ignore>
  <!--<Ignore><Destination>app/Legacy.cs</Destination></Ignore>-->
</CodeSync>
`
	contents, err := afero.ReadFile(fs, "/plan.xml")
	assert.NoError(t, err)
	assert.Equal(t, exp, string(contents))
}

func TestWriterEscapes(t *testing.T) {
	fs = afero.NewMemMapFs()
	Clock = clockwork.NewFakeClockAt(
		time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC))

	w, err := Create("/plan.xml", "/src", "/dst")
	assert.NoError(t, err)
	w.Copy(Entry{Source: "src/A&B.cs", Destination: "app/<weird>.cs"})
	assert.NoError(t, w.Close())

	contents, err := afero.ReadFile(fs, "/plan.xml")
	assert.NoError(t, err)
	assert.Contains(t, string(contents), "<Source>src/A&amp;B.cs</Source>")
	assert.Contains(t, string(contents),
		"<Destination>app/&lt;weird&gt;.cs</Destination>")
}

func TestRoundTrip(t *testing.T) {
	fs = afero.NewMemMapFs()
	Clock = clockwork.NewFakeClockAt(
		time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC))

	result := &match.Result{
		Matches: []match.Match{
			{Source: "src/Program.cs", Dest: "app/Program.cs"},
			{Source: "src/Util.cs", Dest: "app/Util.cs", ByHash: true},
		},
		OneLeft: []match.Match{
			{Source: "src/Button.cs", Dest: "lib/Button.cs"},
		},
		Ambiguous: []match.Ambiguity{
			{Source: "src/Label.cs", Candidates: []string{"a/Label.cs", "b/Label.cs"}},
		},
		SourceOrphans: []string{"src/New.cs"},
		DestOrphans:   []string{"app/Old.cs"},
	}

	w, err := Create("/plan.xml", "/src", "/dst")
	assert.NoError(t, err)
	WriteResult(w, result)
	assert.NoError(t, w.Close())

	p, err := Load("/plan.xml")
	assert.NoError(t, err)
	assert.Equal(t, "/src", p.SourceDirectory)
	assert.Equal(t, "/dst", p.DestDirectory)

	// One-left entries read back as ordinary copies; commented-out
	// destination orphans read back as nothing.
	assert.Equal(t, []Entry{
		{Source: "src/Program.cs", Destination: "app/Program.cs"},
		{Source: "src/Util.cs", Destination: "app/Util.cs"},
		{Source: "src/Button.cs", Destination: "lib/Button.cs"},
	}, p.FilesToCopy())
	assert.Empty(t, p.PartialEntries())
	assert.Equal(t, []string{"src/Label.cs", "src/New.cs"},
		p.IgnoreSourceEntries())
	assert.Empty(t, p.IgnoreDestEntries())
}
