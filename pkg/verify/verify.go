package verify

import (
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/codesync/codesync/pkg/plan"
	"github.com/codesync/codesync/pkg/repo"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// Options controls which checks a verifier run applies.
type Options struct {
	// CheckRepeats drops duplicated copy entries and always-on deduplicates
	// the ignore sets.
	CheckRepeats bool

	// CheckCopyExistence drops copy entries with a missing file on either
	// side.
	CheckCopyExistence bool

	// CheckIgnoreExistence drops ignore entries whose path no longer
	// exists.
	CheckIgnoreExistence bool
}

// Counters summarizes what a verifier run dropped or rewrote.
type Counters struct {
	Kept         int
	Duplicates   int
	Missing      int
	Reclassified int
	Partial      int
}

// A Report is the cleaned-up content of a verified plan. Copies are sorted
// by source path and the ignore sets lexicographically, so writing a report
// is deterministic.
type Report struct {
	SourceDirectory string
	DestDirectory   string

	Copies       []plan.Entry
	IgnoreSource []string
	IgnoreDest   []string

	Counters Counters
}

// Run verifies a loaded plan and returns the cleaned report.
func Run(p *plan.Plan, opts Options) *Report {
	report := &Report{
		SourceDirectory: p.SourceDirectory,
		DestDirectory:   p.DestDirectory,
	}

	report.IgnoreSource = cleanIgnores(p.IgnoreSourceEntries(), opts,
		p.SourceDirectory, &report.Counters)
	report.IgnoreDest = cleanIgnores(p.IgnoreDestEntries(), opts,
		p.DestDirectory, &report.Counters)

	ignoreSource := foldSet(report.IgnoreSource)
	ignoreDest := foldSet(report.IgnoreDest)

	seen := map[string]bool{}
	for _, entry := range p.FilesToCopy() {
		key := repo.Fold(entry.Source) + "\x00" + repo.Fold(entry.Destination)
		if opts.CheckRepeats && seen[key] {
			report.Counters.Duplicates++
			log.WithFields(log.Fields{
				"source":      entry.Source,
				"destination": entry.Destination,
			}).Warn("Dropping a duplicated copy entry.")
			continue
		}
		seen[key] = true

		if ignoreSource[repo.Fold(entry.Source)] ||
			ignoreDest[repo.Fold(entry.Destination)] {
			report.Counters.Reclassified++
			log.WithField("source", entry.Source).Warn(
				"A copy entry overlaps the ignore sets. Treating it as ignored.")
			continue
		}

		if opts.CheckCopyExistence &&
			(!exists(p.SourceDirectory, entry.Source) ||
				!exists(p.DestDirectory, entry.Destination)) {
			report.Counters.Missing++
			log.WithFields(log.Fields{
				"source":      entry.Source,
				"destination": entry.Destination,
			}).Warn("Dropping a copy entry with a missing file.")
			continue
		}

		report.Copies = append(report.Copies, entry)
		report.Counters.Kept++
	}

	for _, entry := range p.PartialEntries() {
		report.Counters.Partial++
		log.WithFields(log.Fields{
			"source":      entry.Source,
			"destination": entry.Destination,
		}).Warn("Dropping a partial copy entry.")
	}

	sort.SliceStable(report.Copies, func(i, j int) bool {
		return repo.Fold(report.Copies[i].Source) <
			repo.Fold(report.Copies[j].Source)
	})
	return report
}

// cleanIgnores deduplicates one ignore set and, when enabled, drops entries
// whose path is gone. The result is sorted.
func cleanIgnores(paths []string, opts Options, root string,
	counters *Counters) []string {

	seen := map[string]bool{}
	var cleaned []string
	for _, path := range paths {
		key := repo.Fold(path)
		if seen[key] {
			counters.Duplicates++
			log.WithField("path", path).Warn(
				"Dropping a duplicated ignore entry.")
			continue
		}
		seen[key] = true

		if opts.CheckIgnoreExistence && !exists(root, path) {
			counters.Missing++
			log.WithField("path", path).Warn(
				"Dropping an ignore entry with a missing file.")
			continue
		}
		cleaned = append(cleaned, path)
	}

	sort.Slice(cleaned, func(i, j int) bool {
		return repo.Fold(cleaned[i]) < repo.Fold(cleaned[j])
	})
	return cleaned
}

// Section header texts for the rewritten plan.
const (
	headerVerifiedCopies  = "Copy entries that passed verification, sorted by source path."
	headerVerifiedIgnores = "Ignore entries that passed verification."
)

// Write emits the report as a fresh plan.
func Write(w *plan.Writer, report *Report) {
	if len(report.Copies) > 0 {
		w.SectionHeader(headerVerifiedCopies)
		for _, entry := range report.Copies {
			w.Copy(entry)
		}
	}

	if len(report.IgnoreSource) > 0 || len(report.IgnoreDest) > 0 {
		w.SectionHeader(headerVerifiedIgnores)
		for _, path := range report.IgnoreSource {
			w.IgnoreSource(path)
		}
		for _, path := range report.IgnoreDest {
			w.IgnoreDest(path)
		}
	}
}

// Log writes a one-line summary of the run at info level.
func (c Counters) Log() {
	log.WithFields(log.Fields{
		"kept":         c.Kept,
		"duplicates":   c.Duplicates,
		"missing":      c.Missing,
		"reclassified": c.Reclassified,
		"partial":      c.Partial,
	}).Info("Finished verifying the plan.")
}

func foldSet(paths []string) map[string]bool {
	set := map[string]bool{}
	for _, path := range paths {
		set[repo.Fold(path)] = true
	}
	return set
}

func exists(root, rel string) bool {
	_, err := fs.Stat(filepath.Join(root, repo.FromSlash(rel)))
	return err == nil
}
