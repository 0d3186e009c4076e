// Package gateway is the stand-in backend behind every submitting step. It
// holds accounts and bookings in memory and answers after a fixed delay.
package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/artisanexperiences/carebook/internal/config"
	"github.com/artisanexperiences/carebook/internal/forms"
	"github.com/artisanexperiences/carebook/internal/logging"
)

// Options configures a Simulated gateway.
type Options struct {
	Delay            time.Duration
	VerificationCode string
	// Cost is the bcrypt cost for new hashes; zero means bcrypt.DefaultCost.
	Cost   int
	Logger *log.Logger
}

type account struct {
	email string
	hash  []byte
}

// Simulated implements wizard.Gateway.
type Simulated struct {
	opts Options

	mu       sync.Mutex
	accounts map[string]account
	bookings map[string]string
}

func New(opts Options) *Simulated {
	if opts.Cost == 0 {
		opts.Cost = bcrypt.DefaultCost
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Simulated{
		opts:     opts,
		accounts: make(map[string]account),
		bookings: make(map[string]string),
	}
}

// FromConfig builds a gateway seeded with the configured accounts.
func FromConfig(cfg config.GatewayConfig, logger *log.Logger) (*Simulated, error) {
	g := New(Options{
		Delay:            cfg.Delay,
		VerificationCode: cfg.VerificationCode,
		Logger:           logger,
	})
	for _, a := range cfg.Accounts {
		var err error
		if a.PasswordHash != "" {
			err = g.AddAccountHash(a.Username, a.Email, a.PasswordHash)
		} else {
			err = g.AddAccount(a.Username, a.Email, a.Password)
		}
		if err != nil {
			return nil, fmt.Errorf("seeding account %q: %w", a.Username, err)
		}
	}
	return g, nil
}

// AddAccount hashes password and stores the account.
func (g *Simulated) AddAccount(username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.opts.Cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return g.AddAccountHash(username, email, string(hash))
}

// AddAccountHash stores an account with a precomputed bcrypt hash.
func (g *Simulated) AddAccountHash(username, email, hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("invalid bcrypt hash: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.accounts[username]; ok {
		return withMetadata(ErrUsernameTaken, map[string]any{"username": username})
	}
	g.accounts[username] = account{email: email, hash: []byte(hash)}
	return nil
}

// HasAccount reports whether username is registered.
func (g *Simulated) HasAccount(username string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.accounts[username]
	return ok
}

// Booked returns who holds the slot on date.
func (g *Simulated) Booked(date, slot string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	who, ok := g.bookings[bookingKey(date, slot)]
	return who, ok
}

// Submit performs the operation named by stepID with the session's values.
// Unknown steps succeed so new forms work before the backend knows them.
func (g *Simulated) Submit(ctx context.Context, stepID string, fields map[string]string) error {
	logger := g.opts.Logger.With("step", stepID)
	logger.Debug("gateway request")

	if err := g.wait(ctx); err != nil {
		return err
	}

	var err error
	switch stepID {
	case forms.StepLogin:
		err = g.login(fields[forms.FieldUsername], fields[forms.FieldPassword])
	case forms.StepRegister:
		err = g.register(fields[forms.FieldUsername], fields[forms.FieldEmail], fields[forms.FieldPassword])
	case forms.StepBook:
		err = g.book(fields[forms.FieldDate], fields[forms.FieldTimeSlot], fields[forms.FieldPatientName])
	case forms.StepForgotEmail:
		// Whether the email is known is never revealed.
		logger.Debug("verification code sent", "email", fields[forms.FieldEmail])
	case forms.StepForgotCode:
		err = g.verifyCode(fields[forms.FieldCode])
	case forms.StepForgotReset:
		err = g.resetPassword(fields[forms.FieldEmail], fields[forms.FieldNewPassword])
	}

	if err != nil {
		logger.Debug("gateway rejected request", "err", err)
		return err
	}
	logger.Debug("gateway accepted request")
	return nil
}

func (g *Simulated) wait(ctx context.Context) error {
	if g.opts.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.opts.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (g *Simulated) login(username, password string) error {
	g.mu.Lock()
	acc, ok := g.accounts[username]
	g.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return withMetadata(ErrInvalidCredentials, map[string]any{"username": username})
	}
	return nil
}

func (g *Simulated) register(username, email, password string) error {
	return g.AddAccount(username, email, password)
}

func (g *Simulated) book(date, slot, patient string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := bookingKey(date, slot)
	if _, taken := g.bookings[key]; taken {
		return withMetadata(ErrSlotTaken, map[string]any{"date": date, "slot": slot})
	}
	g.bookings[key] = patient
	return nil
}

func (g *Simulated) verifyCode(code string) error {
	if code != g.opts.VerificationCode {
		return ErrInvalidCode.Clone()
	}
	return nil
}

func (g *Simulated) resetPassword(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.opts.Cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for name, acc := range g.accounts {
		if acc.email == email {
			acc.hash = hash
			g.accounts[name] = acc
		}
	}
	return nil
}

func bookingKey(date, slot string) string {
	return date + "|" + slot
}
