package update

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/codesync/codesync/pkg/match"
	"github.com/codesync/codesync/pkg/plan"
	"github.com/codesync/codesync/pkg/repo"
)

// Mocked out for unit testing.
var (
	fs        = afero.NewOsFs()
	enumerate = repo.Enumerate
)

// Options controls an updater run.
type Options struct {
	// CompareContents is forwarded to the matcher run over the residuals.
	CompareContents bool

	// DiscardOlder drops carried-forward matches whose source hasn't been
	// touched since the plan was written. Their sources stay out of the
	// residual queue and their destinations stay claimed, so neither is
	// reported as an orphan; a residual source with the same file name can
	// still be matched to such a destination.
	DiscardOlder bool

	// ExcludedDirs are directory names skipped while re-enumerating.
	ExcludedDirs []string
}

// Carry holds everything that survives from the prior plan. It's written to
// the new plan ahead of the matcher's output.
type Carry struct {
	// Matches are the prior Copy entries whose files both still exist.
	Matches []plan.Entry

	// Partial are the prior partial entries plus the prior matches that
	// lost a file, with the missing side blanked.
	Partial []plan.Entry

	IgnoreSource []string
	IgnoreDest   []string
}

// Run revalidates a prior plan against the current trees and reruns the
// matcher over whatever the plan doesn't already account for.
func Run(prior *plan.Plan, opts Options) (*Carry, *match.Result, error) {
	carry := &Carry{
		IgnoreSource: prior.IgnoreSourceEntries(),
		IgnoreDest:   prior.IgnoreDestEntries(),
	}

	// Sources and destinations accounted for by the prior plan, keyed by
	// folded path. They're excluded from the residual matcher run whether or
	// not the entry itself is carried forward.
	claimedSources := map[string]bool{}
	var claimedDests []string

	for _, entry := range prior.FilesToCopy() {
		srcOK := exists(prior.SourceDirectory, entry.Source)
		destOK := exists(prior.DestDirectory, entry.Destination)
		if !srcOK || !destOK {
			degraded := entry
			if !srcOK {
				degraded.Source = ""
			}
			if !destOK {
				degraded.Destination = ""
			}
			carry.Partial = append(carry.Partial, degraded)
			continue
		}

		claimedSources[repo.Fold(entry.Source)] = true
		claimedDests = append(claimedDests, entry.Destination)

		if opts.DiscardOlder && prior.ModifiedTime != nil &&
			!modifiedSince(prior.SourceDirectory, entry.Source, prior) {
			continue
		}
		carry.Matches = append(carry.Matches, entry)
	}
	carry.Partial = append(carry.Partial, prior.PartialEntries()...)

	for _, path := range carry.IgnoreSource {
		claimedSources[repo.Fold(path)] = true
	}
	ignoredDests := map[string]bool{}
	for _, path := range carry.IgnoreDest {
		ignoredDests[repo.Fold(path)] = true
	}

	sources, err := enumerate(prior.SourceDirectory, opts.ExcludedDirs)
	if err != nil {
		return nil, nil, err
	}
	dests, err := enumerate(prior.DestDirectory, opts.ExcludedDirs)
	if err != nil {
		return nil, nil, err
	}

	var queue []string
	for _, src := range sources {
		if !claimedSources[repo.Fold(src)] {
			queue = append(queue, src)
		}
	}

	// Previously matched destinations stay in the index so candidate lists
	// keep their real shape; MarkTaken keeps them out of the orphan report.
	index := match.NewDestIndex()
	for _, dest := range dests {
		if !ignoredDests[repo.Fold(dest)] {
			index.Add(dest)
		}
	}

	matcher := match.NewMatcher(match.Config{
		SourceRoot:      prior.SourceDirectory,
		DestRoot:        prior.DestDirectory,
		CompareContents: opts.CompareContents,
	}, queue, index)
	matcher.MarkTaken(claimedDests)

	return carry, matcher.Run(), nil
}

// WriteCarry writes the carried-forward sections to the head of the new
// plan. The matcher's output is appended after these.
func WriteCarry(w *plan.Writer, carry *Carry) {
	if len(carry.Matches) > 0 {
		w.SectionHeader(plan.HeaderPreviousMatches)
		for _, entry := range carry.Matches {
			w.Copy(entry)
		}
	}

	if len(carry.Partial) > 0 {
		w.SectionHeader(plan.HeaderPreviousPartial)
		for _, entry := range carry.Partial {
			w.Copy(entry)
		}
	}

	if len(carry.IgnoreSource) > 0 || len(carry.IgnoreDest) > 0 {
		w.SectionHeader(plan.HeaderPreviousIgnores)
		for _, path := range carry.IgnoreSource {
			w.IgnoreSource(path)
		}
		for _, path := range carry.IgnoreDest {
			w.IgnoreDest(path)
		}
	}
}

func exists(root, rel string) bool {
	_, err := fs.Stat(filepath.Join(root, repo.FromSlash(rel)))
	return err == nil
}

// modifiedSince reports whether the source file changed after the plan was
// written. Unreadable files count as modified so they're never silently
// dropped.
func modifiedSince(root, rel string, prior *plan.Plan) bool {
	fi, err := fs.Stat(filepath.Join(root, repo.FromSlash(rel)))
	if err != nil {
		log.WithError(err).WithField("path", rel).Warn(
			"Failed to stat a carried-forward source. Keeping its entry.")
		return true
	}
	return fi.ModTime().After(*prior.ModifiedTime)
}
