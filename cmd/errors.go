package cmd

import (
	"fmt"
	"github.com/go-errors/errors"
	"os"
)

// Fatal prints err with a stack trace to stderr and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	fmt.Fprintln(os.Stderr, errors.Wrap(err, 1).ErrorStack())
	os.Exit(1)
}
