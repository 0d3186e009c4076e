// Package wizard drives a linear sequence of validated steps that ends in a
// submission. A Controller owns one session: the current step, the values
// captured so far and the in-flight guard around the Gateway call.
package wizard

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/artisanexperiences/carebook/internal/logging"
	"github.com/artisanexperiences/carebook/internal/validation"
)

// State is a read-only snapshot of a session.
type State struct {
	SessionID   string
	CurrentStep string
	// FieldValues accumulates every accepted step's values.
	FieldValues map[string]string
	// LastResult holds the last failing validation, nil after a successful step.
	LastResult *validation.Result
	InFlight   bool
	Closed     bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// Controller is the state machine for one wizard session.
type Controller struct {
	id      string
	order   []string
	steps   map[string]Step
	gateway Gateway
	logger  *log.Logger

	mu         sync.Mutex
	current    string
	values     map[string]string
	lastResult *validation.Result
	inFlight   bool
	closed     bool
}

// New validates the step graph and starts a session on the first step.
func New(steps []Step, gateway Gateway, opts ...Option) (*Controller, error) {
	if err := validateSteps(steps, gateway); err != nil {
		return nil, err
	}

	c := &Controller{
		id:      uuid.NewString(),
		steps:   make(map[string]Step, len(steps)),
		gateway: gateway,
		logger:  logging.Discard(),
		values:  make(map[string]string),
	}
	for _, s := range steps {
		c.steps[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	c.current = c.order[0]

	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("session", c.id)

	return c, nil
}

// ID returns the session id.
func (c *Controller) ID() string {
	return c.id
}

// Steps returns the step ids in declaration order.
func (c *Controller) Steps() []string {
	return append([]string(nil), c.order...)
}

// Step returns the definition for id.
func (c *Controller) Step(id string) (Step, bool) {
	s, ok := c.steps[id]
	return s, ok
}

// Current returns the definition of the current step.
func (c *Controller) Current() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.current]
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		SessionID:   c.id,
		CurrentStep: c.current,
		FieldValues: copyValues(c.values),
		InFlight:    c.inFlight,
		Closed:      c.closed,
	}
	if c.lastResult != nil {
		r := *c.lastResult
		st.LastResult = &r
	}
	return st
}

// SubmitCurrentStep validates values against the current step and moves the
// session forward. Fields missing from values are taken from what the session
// already captured, so returning to a step needs no re-entry.
//
// Every user-facing result is an Outcome. The error return is reserved for
// integration faults: unknown field names or a closed session.
func (c *Controller) SubmitCurrentStep(ctx context.Context, values validation.Values) (Outcome, error) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return Outcome{}, ErrSessionClosed
	}

	step := c.steps[c.current]
	if c.inFlight {
		c.mu.Unlock()
		c.logger.Warn("duplicate submission rejected", "step", step.ID)
		return Outcome{Kind: OutcomeDuplicate, From: step.ID, Step: step.ID, Reason: ErrDuplicateSubmission}, nil
	}

	if err := step.Validator.CheckFields(values); err != nil {
		c.mu.Unlock()
		return Outcome{}, err
	}

	snapshot := c.snapshot(step, values)
	result := step.Validator.Validate(snapshot)
	if !result.Valid() {
		c.lastResult = &result
		c.mu.Unlock()
		c.logger.Debug("step invalid", "step", step.ID, "fields", result.Failed())
		return Outcome{Kind: OutcomeInvalid, From: step.ID, Step: step.ID, Result: result}, nil
	}

	c.lastResult = nil
	for k, v := range snapshot {
		c.values[k] = v
	}

	if !step.needsGateway() {
		c.current = step.OnSuccess
		c.mu.Unlock()
		c.logger.Debug("step advanced", "step", step.ID, "next", step.OnSuccess)
		return Outcome{Kind: OutcomeAdvanced, From: step.ID, Step: step.OnSuccess}, nil
	}

	c.inFlight = true
	fields := copyValues(c.values)
	c.mu.Unlock()

	c.logger.Debug("submitting step", "step", step.ID)
	err := c.callGateway(ctx, step.ID, fields)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.logger.Warn("submission failed", "step", step.ID, "err", err)
		return Outcome{Kind: OutcomeFailed, From: step.ID, Step: step.ID, Reason: submissionFailed(step.ID, err)}, nil
	}

	if step.Terminal() {
		c.end()
		c.logger.Info("session completed", "step", step.ID)
		return Outcome{Kind: OutcomeCompleted, From: step.ID, Values: fields}, nil
	}

	c.current = step.OnSuccess
	c.logger.Debug("step advanced", "step", step.ID, "next", step.OnSuccess)
	return Outcome{Kind: OutcomeAdvanced, From: step.ID, Step: step.OnSuccess}, nil
}

// GoBack moves to the current step's back target, keeping captured values.
// Backing out of a step whose target is Exit ends the session.
func (c *Controller) GoBack() (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Outcome{}, ErrSessionClosed
	}

	step := c.steps[c.current]
	if c.inFlight {
		return Outcome{Kind: OutcomeBusy, From: step.ID, Step: step.ID, Reason: ErrSubmissionInFlight}, nil
	}

	if step.OnBack == Exit {
		c.end()
		c.logger.Debug("session exited", "step", step.ID)
		return Outcome{Kind: OutcomeExited, From: step.ID}, nil
	}

	c.current = step.OnBack
	c.lastResult = nil
	c.logger.Debug("step moved back", "step", step.ID, "previous", step.OnBack)
	return Outcome{Kind: OutcomeMovedBack, From: step.ID, Step: step.OnBack}, nil
}

// Cancel ends the session and discards captured values.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	if c.inFlight {
		return ErrSubmissionInFlight
	}
	c.end()
	c.logger.Debug("session cancelled")
	return nil
}

// snapshot builds the values to validate for step: the caller's values over
// the session's previously captured ones, restricted to the step's fields.
// Caller must hold mu.
func (c *Controller) snapshot(step Step, values validation.Values) validation.Values {
	fields := step.Validator.Fields()
	out := make(validation.Values, len(fields))
	for _, name := range fields {
		if v, ok := values[name]; ok {
			out[name] = v
		} else if v, ok := c.values[name]; ok {
			out[name] = v
		}
	}
	return out
}

// callGateway runs the gateway with inFlight raised. A panicking gateway
// releases the session before the panic continues.
func (c *Controller) callGateway(ctx context.Context, stepID string, fields map[string]string) error {
	defer func() {
		if r := recover(); r != nil {
			c.mu.Lock()
			c.inFlight = false
			c.mu.Unlock()
			panic(r)
		}
	}()
	return c.gateway.Submit(ctx, stepID, fields)
}

// Caller must hold mu.
func (c *Controller) end() {
	c.closed = true
	c.current = ""
	c.values = make(map[string]string)
	c.lastResult = nil
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
