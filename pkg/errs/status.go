package errs

const (
	// StatusCodeSuccess indicates a successful execution.
	StatusCodeSuccess = 0

	// StatusCodeCompileBug indicates a compile-time bug: malformed IR
	// reaching the core.
	StatusCodeCompileBug = 1

	// StatusCodeRuntime indicates a runtime invariant violation.
	StatusCodeRuntime = 2

	// StatusCodeBadUsage indicates incorrect usage of the pijama tool.
	StatusCodeBadUsage = 50

	// StatusCodeToolError indicates a tool-level failure unrelated to the
	// language itself (e.g. a file I/O or decoding error).
	StatusCodeToolError = 51
)
