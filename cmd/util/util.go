package util

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/codesync/codesync/pkg/config"
	"github.com/codesync/codesync/pkg/errors"
	"github.com/codesync/codesync/pkg/repo"
)

// HandleFatalError prints the friendliest available form of err and exits
// with a failure status.
func HandleFatalError(err error) {
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(1)
}

// ExcludedDirs combines the built-in directory exclusions with the user
// config's and the command line's.
func ExcludedDirs(cfg config.User, flagDirs []string) []string {
	dirs := append([]string(nil), repo.DefaultExcludedDirs...)
	dirs = append(dirs, cfg.ExcludedDirs...)
	return append(dirs, flagDirs...)
}

// HandlePanic is deferred at the top of main to log panics before the
// process dies.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("stack", string(debug.Stack())).
			Errorf("Unexpected panic: %v", r)
		os.Exit(1)
	}
}
