package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/codesync/codesync/cmd/analyze"
	syncCmd "github.com/codesync/codesync/cmd/sync"
	updateCmd "github.com/codesync/codesync/cmd/update"
	"github.com/codesync/codesync/cmd/util"
	verifyCmd "github.com/codesync/codesync/cmd/verify"
	versionCmd "github.com/codesync/codesync/cmd/version"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "CODESYNC_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd := &cobra.Command{
		Use:          "codesync",
		Short:        "Reconcile two source trees through an editable plan.",
		SilenceUsage: true,

		// The error returned by rootCmd.Execute is printed by
		// util.HandleFatalError, so we silence errors here to avoid double
		// printing.
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		analyze.New(),
		updateCmd.New(),
		verifyCmd.New(),
		syncCmd.New(),
		versionCmd.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}
