package config

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitError asks the entry point to exit with a specific status code.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// ExitOnError exits with the code carried by err. Plain errors exit with 1
// after printing; an ExitError without a cause exits silently.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	os.Exit(report(os.Stderr, err))
}

func report(w io.Writer, err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Code == 0 {
			return 1
		}
		return exitErr.Code
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
