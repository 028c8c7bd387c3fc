package plan

import (
	"encoding/xml"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/codesync/codesync/pkg/errors"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// Clock is mocked out for unit testing.
var Clock = clockwork.NewRealClock()

// An Entry is a Source/Destination pair from a Copy or Ignore element. An
// empty field means the element was absent.
type Entry struct {
	Source      string `xml:"Source"`
	Destination string `xml:"Destination"`
}

// A Plan is a loaded synchronization plan. The entry views are disjoint:
// every Copy element lands in exactly one of FilesToCopy and PartialEntries,
// while an Ignore element with both sides appears in both ignore views.
type Plan struct {
	SourceDirectory string
	DestDirectory   string

	// ModifiedTime is nil when the document has no ModifiedTime element.
	ModifiedTime *time.Time

	// Copies and Ignores hold the raw entries in document order. The view
	// methods below are the usual way to consume them.
	Copies  []Entry
	Ignores []Entry
}

type document struct {
	XMLName         xml.Name `xml:"CodeSync"`
	SourceDirectory *string  `xml:"SourceDirectory"`
	DestDirectory   *string  `xml:"DestDirectory"`
	ModifiedTime    string   `xml:"ModifiedTime"`
	Copies          []Entry  `xml:"Copy"`
	Ignores         []Entry  `xml:"Ignore"`
}

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.WithContext(err, "read plan")
	}

	var doc document
	if err := xml.Unmarshal(contents, &doc); err != nil {
		return nil, errors.InvalidPlan{Path: path, Reason: err.Error()}
	}

	if doc.SourceDirectory == nil || doc.DestDirectory == nil {
		return nil, errors.InvalidPlan{Path: path,
			Reason: "missing SourceDirectory or DestDirectory"}
	}

	plan := &Plan{
		SourceDirectory: *doc.SourceDirectory,
		DestDirectory:   *doc.DestDirectory,
		Copies:          doc.Copies,
		Ignores:         doc.Ignores,
	}

	if doc.ModifiedTime != "" {
		modified, err := time.Parse(time.RFC3339, doc.ModifiedTime)
		if err != nil {
			return nil, errors.InvalidPlan{Path: path,
				Reason: "unparseable ModifiedTime: " + err.Error()}
		}
		plan.ModifiedTime = &modified
	}
	return plan, nil
}

// FilesToCopy returns the Copy entries with both sides present, in document
// order.
func (p *Plan) FilesToCopy() []Entry {
	var entries []Entry
	for _, entry := range p.Copies {
		if entry.Source != "" && entry.Destination != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// PartialEntries returns the Copy entries with at least one side missing, in
// document order.
func (p *Plan) PartialEntries() []Entry {
	var entries []Entry
	for _, entry := range p.Copies {
		if entry.Source == "" || entry.Destination == "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// IgnoreSourceEntries returns the source paths of the Ignore entries that
// carry one.
func (p *Plan) IgnoreSourceEntries() []string {
	var paths []string
	for _, entry := range p.Ignores {
		if entry.Source != "" {
			paths = append(paths, entry.Source)
		}
	}
	return paths
}

// IgnoreDestEntries returns the destination paths of the Ignore entries that
// carry one.
func (p *Plan) IgnoreDestEntries() []string {
	var paths []string
	for _, entry := range p.Ignores {
		if entry.Destination != "" {
			paths = append(paths, entry.Destination)
		}
	}
	return paths
}
