package main

import (
	"github.com/christianpoveda/pijama/pkg/errs"
)

// reportAndExit reports err to the user and exits with the matching status
// code. A nil err means a successful run.
func reportAndExit(err error) {
	errs.ReportAndExit(err)
}

// reportAndExitOnError is a no-op if err is nil; otherwise it behaves like
// reportAndExit.
func reportAndExitOnError(err error) {
	if err == nil {
		return
	}
	reportAndExit(err)
}
