package wizard

import (
	"github.com/goliatone/go-errors"
)

const (
	ErrCodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	ErrCodeSubmissionInFlight  = "SUBMISSION_IN_FLIGHT"
	ErrCodeSubmissionFailed    = "SUBMISSION_FAILED"
	ErrCodeSessionClosed       = "SESSION_CLOSED"
	ErrCodeInvalidDefinition   = "INVALID_STEP_DEFINITION"
)

var (
	ErrDuplicateSubmission = errors.New("submission already in progress", errors.CategoryConflict).
				WithTextCode(ErrCodeDuplicateSubmission)
	ErrSubmissionInFlight = errors.New("cannot leave a step while its submission is in flight", errors.CategoryConflict).
				WithTextCode(ErrCodeSubmissionInFlight)
	ErrSessionClosed = errors.New("wizard session is closed", errors.CategoryBadInput).
				WithTextCode(ErrCodeSessionClosed)
	ErrInvalidDefinition = errors.New("invalid step definition", errors.CategoryBadInput).
				WithTextCode(ErrCodeInvalidDefinition)
)

func submissionFailed(stepID string, source error) error {
	return errors.Wrap(source, errors.CategoryExternal, "submission failed").
		WithTextCode(ErrCodeSubmissionFailed).
		WithMetadata(map[string]any{
			"step": stepID,
		})
}

func definitionError(message string) error {
	err := ErrInvalidDefinition.Clone()
	err.Message = message
	return err
}
