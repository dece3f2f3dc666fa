// Package console prints leveled status messages to stderr. Colors degrade
// automatically when stderr is not a terminal.
package console

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	warnPrefix    = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorPrefix   = color.New(color.FgRed, color.Bold).SprintFunc()
	successPrefix = color.New(color.FgGreen, color.Bold).SprintFunc()

	// Quiet suppresses Infof and Successf; warnings and errors always print.
	Quiet = false
)

// Infof prints a plain progress message.
func Infof(format string, args ...interface{}) {
	if Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Warnf prints a non-fatal problem. The run continues.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warnPrefix("Warning:"), fmt.Sprintf(format, args...))
}

// Errorf prints a fatal problem before the process exits non-zero.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorPrefix("Error:"), fmt.Sprintf(format, args...))
}

// Successf prints a completion message.
func Successf(format string, args ...interface{}) {
	if Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", successPrefix("Done:"), fmt.Sprintf(format, args...))
}
