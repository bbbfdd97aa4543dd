package cli

import (
	"errors"

	"auralis-cli/internal/mutate"

	"github.com/spf13/cobra"
)

// reportedError wraps an error that has already been written to stderr.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// configError reports settings that could not be loaded or failed validation.
type configError struct {
	err error
}

func (e configError) Error() string { return e.err.Error() }

func (e configError) Unwrap() error { return e.err }

func (configError) Code() string { return "config_error" }

type doctorIssuesError struct{}

func (doctorIssuesError) Error() string { return "doctor found errors" }

func (doctorIssuesError) Code() string { return "doctor_issues" }

func errorCode(err error) string {
	var u usageError
	if errors.As(err, &u) {
		return "usage_error"
	}
	return mutate.Code(err)
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	switch errorCode(err) {
	case "":
		return 0
	case "usage_error", "config_error", mutate.CodeValidation:
		return 2
	case mutate.CodeNotFound:
		return 3
	case mutate.CodeInvalidReference, mutate.CodeInvalidTransition, mutate.CodeGuardViolation:
		return 4
	default:
		return 1
	}
}

// Execute runs the root command and returns the exit status. Errors that no
// command reported (flag parsing, unknown commands) are written here.
func Execute(cmd *cobra.Command) int {
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err: err}
	})
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var r reportedError
	if !errors.As(err, &r) {
		if !isCoded(err) {
			err = usageError{err: err}
		}
		writeErrEnvelope(cmd.ErrOrStderr(), err)
	}
	return ExitCode(err)
}

func isCoded(err error) bool {
	var c interface{ Code() string }
	return errors.As(err, &c)
}
