package errs

import (
	"errors"
	"fmt"
	"os"
)

// ReportAndExit reports the error err to the end user and exits with the
// appropriate status code. It's fine if err is nil: that means a successful
// run, and we exit successfully.
func ReportAndExit(err error) {
	var badUsageErr *BadUsage
	var toolErr *ToolError
	var compileBugErr *CompileBug
	var runtimeErr *Runtime

	switch {
	case err == nil:
		os.Exit(StatusCodeSuccess)

	case errors.As(err, &badUsageErr):
		fmt.Fprintf(os.Stderr, "Usage: %v\n", badUsageErr)
		os.Exit(StatusCodeBadUsage)

	case errors.As(err, &toolErr):
		fmt.Fprintf(os.Stderr, "%v\n", toolErr)
		os.Exit(StatusCodeToolError)

	case errors.As(err, &compileBugErr):
		fmt.Fprintf(os.Stderr, "%v\n", compileBugErr)
		os.Exit(StatusCodeCompileBug)

	case errors.As(err, &runtimeErr):
		fmt.Fprintf(os.Stderr, "%v\n", runtimeErr)
		os.Exit(StatusCodeRuntime)

	default:
		fmt.Fprintf(os.Stderr, "unexpected error of type %T: %v\n", err, err)
		os.Exit(StatusCodeCompileBug)
	}
}
