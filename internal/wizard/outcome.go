package wizard

import (
	"github.com/artisanexperiences/carebook/internal/validation"
)

// OutcomeKind classifies the result of a wizard transition.
type OutcomeKind int

const (
	// OutcomeInvalid: the step failed validation; Result holds the errors.
	OutcomeInvalid OutcomeKind = iota + 1
	// OutcomeAdvanced: the wizard moved forward to Step.
	OutcomeAdvanced
	// OutcomeCompleted: the gateway accepted the final submission.
	OutcomeCompleted
	// OutcomeFailed: the gateway rejected the submission; Reason explains why.
	OutcomeFailed
	// OutcomeDuplicate: a submission was already in flight.
	OutcomeDuplicate
	// OutcomeBusy: back navigation was refused during a submission.
	OutcomeBusy
	// OutcomeMovedBack: the wizard moved back to Step.
	OutcomeMovedBack
	// OutcomeExited: the user backed out of the first step.
	OutcomeExited
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeInvalid:   "invalid",
	OutcomeAdvanced:  "advanced",
	OutcomeCompleted: "completed",
	OutcomeFailed:    "failed",
	OutcomeDuplicate: "duplicate",
	OutcomeBusy:      "busy",
	OutcomeMovedBack: "moved_back",
	OutcomeExited:    "exited",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Outcome is what a transition reports back to the UI.
type Outcome struct {
	Kind OutcomeKind
	// From is the step the transition started on.
	From string
	// Step is the current step after the transition. Empty once the session ends.
	Step string
	// Result is set for OutcomeInvalid.
	Result validation.Result
	// Reason is set for OutcomeFailed, OutcomeDuplicate and OutcomeBusy.
	Reason error
	// Values holds the submitted fields for OutcomeCompleted.
	Values map[string]string
}

// Done reports whether the outcome ended the session.
func (o Outcome) Done() bool {
	return o.Kind == OutcomeCompleted || o.Kind == OutcomeExited
}
