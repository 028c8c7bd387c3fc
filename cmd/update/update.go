package update

import (
	"github.com/spf13/cobra"

	"github.com/codesync/codesync/cmd/analyze"
	"github.com/codesync/codesync/cmd/util"
	"github.com/codesync/codesync/pkg/config"
	"github.com/codesync/codesync/pkg/errors"
	"github.com/codesync/codesync/pkg/plan"
	"github.com/codesync/codesync/pkg/update"
)

type options struct {
	planPath        string
	output          string
	compareContents bool
	discardOlder    bool
	excludedDirs    []string
}

// New creates a new `update` command.
func New() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rebuild a plan, keeping the decisions that still hold.",
		Long: "Revalidate every entry of an existing plan against the current\n" +
			"trees, carry forward the ones that still hold, and rerun the\n" +
			"matcher over files the plan doesn't account for.",
		Run: func(_ *cobra.Command, args []string) {
			if len(args) > 0 {
				opts.planPath = args[0]
			}
			if err := run(opts); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&opts.planPath, "plan", analyze.DefaultPlanPath,
		"The plan to update.")
	cmd.Flags().StringVar(&opts.output, "output", "",
		"Where to write the updated plan. Defaults to overwriting the input.")
	cmd.Flags().BoolVar(&opts.compareContents, "compare-contents", false,
		"Break ties and pair renamed files by comparing file contents.")
	cmd.Flags().BoolVar(&opts.discardOlder, "discard-older", false,
		"Drop carried-forward matches whose source hasn't changed since the plan was written.")
	cmd.Flags().StringSliceVar(&opts.excludedDirs, "exclude", nil,
		"Directory names to skip, in addition to the built-in exclusions.")
	return cmd
}

func run(opts options) error {
	userConfig, err := config.ParseUser()
	if err != nil {
		return errors.WithContext(err, "parse user config")
	}

	prior, err := plan.Load(opts.planPath)
	if err != nil {
		return err
	}

	carry, result, err := update.Run(prior, update.Options{
		CompareContents: opts.compareContents || userConfig.CompareContents,
		DiscardOlder:    opts.discardOlder,
		ExcludedDirs:    util.ExcludedDirs(userConfig, opts.excludedDirs),
	})
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = opts.planPath
	}
	w, err := plan.Create(output, prior.SourceDirectory, prior.DestDirectory)
	if err != nil {
		return err
	}
	update.WriteCarry(w, carry)
	plan.WriteResult(w, result)
	if err := w.Close(); err != nil {
		return err
	}

	result.Counters.Log()
	return nil
}
