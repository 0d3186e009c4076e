package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/artisanexperiences/carebook/internal/config"
	"github.com/artisanexperiences/carebook/internal/credentials"
	"github.com/artisanexperiences/carebook/internal/forms"
	"github.com/artisanexperiences/carebook/internal/gateway"
	"github.com/artisanexperiences/carebook/internal/logging"
	"github.com/artisanexperiences/carebook/internal/wizard"
)

// AppContext is everything a command needs to run a form. One context lives
// for the whole process so the menu loop shares the credential store.
type AppContext struct {
	Config   *config.Config
	Logger   *log.Logger
	Policies forms.Policies
	Store    credentials.Store

	gatewayInit sync.Once
	gateway     *gateway.Simulated
	gatewayErr  error
}

// NewAppContext loads and checks the configuration. Log output goes to logOut;
// a non-empty logLevel overrides the configured one.
func NewAppContext(configPath, logLevel string, logOut io.Writer) (*AppContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, withExitCode(config.ExitConfigurationError, fmt.Errorf("loading config: %w", err))
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, withExitCode(config.ExitConfigurationError, fmt.Errorf("invalid config:\n%w", err))
	}

	logger, err := logging.New(logOut, cfg.LogLevel)
	if err != nil {
		return nil, withExitCode(config.ExitConfigurationError, err)
	}

	policies, err := forms.PoliciesByName(cfg.Passwords.Login, cfg.Passwords.Register, cfg.Passwords.Reset)
	if err != nil {
		return nil, withExitCode(config.ExitConfigurationError, err)
	}

	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}

	return &AppContext{
		Config:   cfg,
		Logger:   logger,
		Policies: policies,
		Store:    credentials.NewMemoryStore(),
	}, nil
}

// Gateway builds the simulated backend on first use; seeding hashes passwords.
func (a *AppContext) Gateway() (*gateway.Simulated, error) {
	a.gatewayInit.Do(func() {
		a.gateway, a.gatewayErr = gateway.FromConfig(a.Config.Gateway, a.Logger.WithPrefix("gateway"))
		if a.gatewayErr != nil {
			a.gatewayErr = withExitCode(config.ExitConfigurationError, a.gatewayErr)
		}
	})
	return a.gateway, a.gatewayErr
}

// Form returns the named form built with the configured password policies.
func (a *AppContext) Form(name string) (forms.Definition, error) {
	def, err := forms.Create(name, a.Policies)
	if err != nil {
		return forms.Definition{}, withExitCode(config.ExitInvalidArguments, err)
	}
	return def, nil
}

// NewWizard starts a session for the named form against the gateway.
func (a *AppContext) NewWizard(def forms.Definition) (*wizard.Controller, error) {
	gw, err := a.Gateway()
	if err != nil {
		return nil, err
	}
	return def.NewWizard(gw, wizard.WithLogger(a.Logger.WithPrefix("wizard")))
}

var (
	appOnce sync.Once
	app     *AppContext
	appErr  error
)
