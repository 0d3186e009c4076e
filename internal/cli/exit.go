package cli

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/artisanexperiences/carebook/internal/config"
	"github.com/artisanexperiences/carebook/internal/validation"
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return config.ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if validation.HasCode(err, validation.ErrCodeUnknownField) {
		return config.ExitInvalidArguments
	}
	return config.ExitGeneralError
}

// reasonMessage digs out the innermost user-facing message of a failure.
func reasonMessage(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for err != nil {
		var ge *goerrors.Error
		if !errors.As(err, &ge) {
			break
		}
		msg = ge.Message
		err = errors.Unwrap(ge)
	}
	if err != nil {
		msg = err.Error()
	}
	return msg
}
