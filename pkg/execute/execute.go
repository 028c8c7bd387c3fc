package execute

import (
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/codesync/codesync/pkg/errors"
	"github.com/codesync/codesync/pkg/plan"
	"github.com/codesync/codesync/pkg/repo"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// Options controls an executor run.
type Options struct {
	// DryRun logs what would be copied without touching the destination
	// tree.
	DryRun bool

	// OnlyNewer skips copy entries whose source hasn't changed since the
	// plan was written, or since the destination was last written when the
	// plan carries no timestamp.
	OnlyNewer bool
}

// Counters summarizes an executor run.
type Counters struct {
	Copied  int
	Ignored int
	Errors  int
}

// Run executes every complete copy entry in the plan. Entries fail
// independently; an unreadable file is counted and the run moves on.
func Run(p *plan.Plan, opts Options) Counters {
	var counters Counters
	for _, entry := range p.FilesToCopy() {
		srcPath := filepath.Join(p.SourceDirectory, repo.FromSlash(entry.Source))
		destPath := filepath.Join(p.DestDirectory, repo.FromSlash(entry.Destination))

		if opts.OnlyNewer {
			fresh, err := isFresh(srcPath, destPath, p)
			if err != nil {
				log.WithError(err).WithField("source", entry.Source).Error(
					"Failed to check the file's freshness. Skipping it.")
				counters.Errors++
				continue
			}
			if !fresh {
				counters.Ignored++
				continue
			}
		}

		if opts.DryRun {
			log.WithFields(log.Fields{
				"source":      entry.Source,
				"destination": entry.Destination,
			}).Info("Would copy.")
			counters.Copied++
			continue
		}

		if err := copyFile(srcPath, destPath); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"source":      entry.Source,
				"destination": entry.Destination,
			}).Error("Failed to copy the file.")
			counters.Errors++
			continue
		}
		counters.Copied++
	}
	return counters
}

// isFresh reports whether the source is newer than the plan's timestamp, or
// newer than the destination when the plan has none. Without a plan
// timestamp, a missing destination always counts as fresh.
func isFresh(srcPath, destPath string, p *plan.Plan) (bool, error) {
	srcInfo, err := fs.Stat(srcPath)
	if err != nil {
		return false, errors.WithContext(err, "stat source")
	}

	if p.ModifiedTime != nil {
		return srcInfo.ModTime().After(*p.ModifiedTime), nil
	}

	destInfo, err := fs.Stat(destPath)
	if err != nil {
		return true, nil
	}
	return srcInfo.ModTime().After(destInfo.ModTime()), nil
}

// copyFile overwrites destPath with the contents of srcPath, creating parent
// directories as needed.
func copyFile(srcPath, destPath string) error {
	src, err := fs.Open(srcPath)
	if err != nil {
		return errors.WithContext(err, "open source")
	}
	defer src.Close()

	if err := fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.WithContext(err, "create destination directory")
	}

	dest, err := fs.Create(destPath)
	if err != nil {
		return errors.WithContext(err, "create destination")
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		return errors.WithContext(err, "copy contents")
	}
	return dest.Close()
}

// Log writes a one-line summary of the run at info level.
func (c Counters) Log() {
	log.WithFields(log.Fields{
		"copied":  c.Copied,
		"ignored": c.Ignored,
		"errors":  c.Errors,
	}).Info("Finished executing the plan.")
}
