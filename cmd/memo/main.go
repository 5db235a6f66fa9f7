// Command memo generates conventional commit messages from staged changes.
package main

import (
	"fmt"
	"os"

	"github.com/memocli/memo/internal/cmd"
	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if apperrors.IsVerbose() {
			fmt.Fprintln(os.Stderr, apperrors.FormatErrorVerbose(err))
		} else {
			fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		}
		os.Exit(apperrors.GetExitCode(err))
	}
}
