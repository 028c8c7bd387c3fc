package analyze

import (
	"github.com/spf13/cobra"

	"github.com/codesync/codesync/cmd/util"
	"github.com/codesync/codesync/pkg/config"
	"github.com/codesync/codesync/pkg/errors"
	"github.com/codesync/codesync/pkg/match"
	"github.com/codesync/codesync/pkg/plan"
	"github.com/codesync/codesync/pkg/repo"
)

// DefaultPlanPath is where commands look for the plan when --plan isn't
// given.
const DefaultPlanPath = "codesync-plan.xml"

type options struct {
	source          string
	dest            string
	output          string
	compareContents bool
	excludedDirs    []string
}

// New creates a new `analyze` command.
func New() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Match the source tree against the destination tree and write a plan.",
		Long: "Enumerate both trees, match every source file to a destination\n" +
			"file, and write the result as an editable plan. Unmatched and\n" +
			"ambiguous files are listed in the plan for manual resolution.",
		Run: func(_ *cobra.Command, args []string) {
			if len(args) > 0 {
				opts.source = args[0]
			}
			if len(args) > 1 {
				opts.dest = args[1]
			}
			if err := run(opts); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&opts.source, "source", "",
		"The root of the source tree. Defaults to the configured source.")
	cmd.Flags().StringVar(&opts.dest, "dest", "",
		"The root of the destination tree. Defaults to the configured destination.")
	cmd.Flags().StringVar(&opts.output, "output", DefaultPlanPath,
		"Where to write the plan.")
	cmd.Flags().BoolVar(&opts.compareContents, "compare-contents", false,
		"Break ties and pair renamed files by comparing file contents.")
	cmd.Flags().StringSliceVar(&opts.excludedDirs, "exclude", nil,
		"Directory names to skip, in addition to the built-in exclusions.")
	return cmd
}

func run(opts options) error {
	userConfig, err := config.ParseUser()
	if err != nil {
		return errors.WithContext(err, "parse user config")
	}

	source := opts.source
	if source == "" {
		source = userConfig.Source
	}
	dest := opts.dest
	if dest == "" {
		dest = userConfig.Destination
	}
	if source == "" || dest == "" {
		return errors.NewFriendlyError("Both tree roots are required. " +
			"Pass --source and --dest, or set them in " + config.UserConfigPath + ".")
	}

	compareContents := opts.compareContents || userConfig.CompareContents
	excludedDirs := util.ExcludedDirs(userConfig, opts.excludedDirs)

	sources, err := repo.Enumerate(source, excludedDirs)
	if err != nil {
		return errors.WithContext(err, "enumerate source tree")
	}
	dests, err := repo.Enumerate(dest, excludedDirs)
	if err != nil {
		return errors.WithContext(err, "enumerate destination tree")
	}

	matcher := match.NewMatcher(match.Config{
		SourceRoot:      source,
		DestRoot:        dest,
		CompareContents: compareContents,
	}, sources, match.BuildDestIndex(dests))
	result := matcher.Run()

	w, err := plan.Create(opts.output, source, dest)
	if err != nil {
		return err
	}
	plan.WriteResult(w, result)
	if err := w.Close(); err != nil {
		return err
	}

	result.Counters.Log()
	return nil
}
