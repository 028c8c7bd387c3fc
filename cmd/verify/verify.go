package verify

import (
	"github.com/spf13/cobra"

	"github.com/codesync/codesync/cmd/analyze"
	"github.com/codesync/codesync/cmd/util"
	"github.com/codesync/codesync/pkg/plan"
	"github.com/codesync/codesync/pkg/verify"
)

type options struct {
	planPath     string
	output       string
	checkRepeats bool
	checkCopies  bool
	checkIgnores bool
}

// New creates a new `verify` command.
func New() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a plan for duplicates, overlaps, and missing files.",
		Long: "Check a plan for duplicated entries, copy entries that overlap\n" +
			"the ignore sets, and files that no longer exist. With --output,\n" +
			"write the cleaned plan back out, sorted.",
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
		"The plan to verify.")
	cmd.Flags().StringVar(&opts.output, "output", "",
		"Where to write the cleaned plan. Without it, problems are only reported.")
	cmd.Flags().BoolVar(&opts.checkRepeats, "check-repeats", true,
		"Drop duplicated copy entries.")
	cmd.Flags().BoolVar(&opts.checkCopies, "check-copy-files", false,
		"Drop copy entries with a missing file on either side.")
	cmd.Flags().BoolVar(&opts.checkIgnores, "check-ignore-files", false,
		"Drop ignore entries whose file no longer exists.")
	return cmd
}

func run(opts options) error {
	p, err := plan.Load(opts.planPath)
	if err != nil {
		return err
	}

	report := verify.Run(p, verify.Options{
		CheckRepeats:         opts.checkRepeats,
		CheckCopyExistence:   opts.checkCopies,
		CheckIgnoreExistence: opts.checkIgnores,
	})

	if opts.output != "" {
		w, err := plan.Create(opts.output, report.SourceDirectory,
			report.DestDirectory)
		if err != nil {
			return err
		}
		verify.Write(w, report)
		if err := w.Close(); err != nil {
			return err
		}
	}

	report.Counters.Log()
	return nil
}
