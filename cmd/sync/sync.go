package sync

import (
	"github.com/spf13/cobra"

	"github.com/codesync/codesync/cmd/analyze"
	"github.com/codesync/codesync/cmd/util"
	"github.com/codesync/codesync/pkg/errors"
	"github.com/codesync/codesync/pkg/execute"
	"github.com/codesync/codesync/pkg/plan"
)

type options struct {
	planPath  string
	dryRun    bool
	onlyNewer bool
}

// New creates a new `sync` command.
func New() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy every file the plan says to copy.",
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
		"The plan to execute.")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"Log what would be copied without writing anything.")
	cmd.Flags().BoolVar(&opts.onlyNewer, "only-newer", false,
		"Skip files that haven't changed since the plan was written.")
	return cmd
}

func run(opts options) error {
	p, err := plan.Load(opts.planPath)
	if err != nil {
		return err
	}

	counters := execute.Run(p, execute.Options{
		DryRun:    opts.dryRun,
		OnlyNewer: opts.onlyNewer,
	})
	counters.Log()

	if counters.Errors > 0 {
		return errors.NewFriendlyError(
			"%d of the plan's files failed to copy.", counters.Errors)
	}
	return nil
}
