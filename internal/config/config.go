package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/carebook/internal/fs"
	"github.com/artisanexperiences/carebook/internal/validation"
)

const (
	// Exit codes
	ExitSuccess = iota
	ExitGeneralError
	ExitInvalidArguments
	ExitValidationFailed
	ExitSubmissionFailed
	ExitConfigurationError
)

const (
	Name     = "carebook"
	FileName = Name + ".yaml"
)

// Config represents carebook.yaml
type Config struct {
	LogLevel  string         `mapstructure:"log_level"`
	Gateway   GatewayConfig  `mapstructure:"gateway"`
	Passwords PasswordConfig `mapstructure:"passwords"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

// GatewayConfig tunes the simulated backend.
type GatewayConfig struct {
	Delay            time.Duration   `mapstructure:"delay"`
	VerificationCode string          `mapstructure:"verification_code"`
	Accounts         []AccountConfig `mapstructure:"accounts"`
}

// AccountConfig seeds an account. Password is hashed at startup; PasswordHash
// is used as-is.
type AccountConfig struct {
	Username     string `mapstructure:"username"`
	Email        string `mapstructure:"email"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// PasswordConfig names the composition policy of each password form.
type PasswordConfig struct {
	Login    string `mapstructure:"login"`
	Register string `mapstructure:"register"`
	Reset    string `mapstructure:"reset"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Gateway: GatewayConfig{
			Delay:            1500 * time.Millisecond,
			VerificationCode: "123456",
			Accounts: []AccountConfig{
				{Username: "demo_user", Email: "demo@carebook.test", Password: "Demo123!"},
			},
		},
		Passwords: PasswordConfig{
			Login:    validation.PolicyStandard.Name,
			Register: validation.PolicyNone.Name,
			Reset:    validation.PolicyStrict.Name,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("gateway.delay", d.Gateway.Delay)
	v.SetDefault("gateway.verification_code", d.Gateway.VerificationCode)
	v.SetDefault("passwords.login", d.Passwords.Login)
	v.SetDefault("passwords.register", d.Passwords.Register)
	v.SetDefault("passwords.reset", d.Passwords.Reset)
}

// Load reads the config at path. With an empty path it looks for carebook.yaml
// in the working directory, then in the global config directory, and falls back
// to defaults when neither exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(Name)
		v.AddConfigPath(".")
		if dir, err := GetGlobalConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case path == "" && errors.As(err, &notFound):
		case path != "" && errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s not found", path)
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !v.IsSet("gateway.accounts") {
		cfg.Gateway.Accounts = Default().Gateway.Accounts
	}
	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Gateway.Delay < 0 {
		errs = append(errs, fmt.Errorf("gateway.delay: must not be negative, got %s", c.Gateway.Delay))
	}
	if !codePattern.MatchString(c.Gateway.VerificationCode) {
		errs = append(errs, fmt.Errorf("gateway.verification_code: must be 6 digits, got %q", c.Gateway.VerificationCode))
	}

	seen := make(map[string]bool, len(c.Gateway.Accounts))
	for i, a := range c.Gateway.Accounts {
		switch {
		case a.Username == "":
			errs = append(errs, fmt.Errorf("gateway.accounts[%d]: username is required", i))
		case seen[a.Username]:
			errs = append(errs, fmt.Errorf("gateway.accounts[%d]: username %q listed twice", i, a.Username))
		}
		seen[a.Username] = true
		if (a.Password == "") == (a.PasswordHash == "") {
			errs = append(errs, fmt.Errorf("gateway.accounts[%d]: set exactly one of password or password_hash", i))
		}
	}

	for key, name := range map[string]string{
		"passwords.login":    c.Passwords.Login,
		"passwords.register": c.Passwords.Register,
		"passwords.reset":    c.Passwords.Reset,
	} {
		if _, err := validation.LookupPolicy(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}

// Save writes cfg to dir/carebook.yaml. Keys carebook does not know about are
// kept so manual edits survive.
func Save(fsys fs.FS, dir string, cfg *Config) error {
	configPath := filepath.Join(dir, FileName)

	var existing map[string]interface{}
	if content, err := fsys.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(content, &existing); err != nil {
			return fmt.Errorf("parsing existing config: %w", err)
		}
	}
	if existing == nil {
		existing = make(map[string]interface{})
	}

	if cfg.LogLevel != "" {
		existing["log_level"] = cfg.LogLevel
	}

	gateway := section(existing, "gateway")
	gateway["delay"] = cfg.Gateway.Delay.String()
	if cfg.Gateway.VerificationCode != "" {
		gateway["verification_code"] = cfg.Gateway.VerificationCode
	}
	if len(cfg.Gateway.Accounts) > 0 {
		accounts := make([]map[string]string, 0, len(cfg.Gateway.Accounts))
		for _, a := range cfg.Gateway.Accounts {
			entry := map[string]string{"username": a.Username}
			if a.Email != "" {
				entry["email"] = a.Email
			}
			if a.PasswordHash != "" {
				entry["password_hash"] = a.PasswordHash
			} else if a.Password != "" {
				entry["password"] = a.Password
			}
			accounts = append(accounts, entry)
		}
		gateway["accounts"] = accounts
	}

	for key, name := range map[string]string{
		"login":    cfg.Passwords.Login,
		"register": cfg.Passwords.Register,
		"reset":    cfg.Passwords.Reset,
	} {
		if name != "" {
			section(existing, "passwords")[key] = name
		}
	}

	content, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := fs.WriteFileAtomic(fsys, configPath, content, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// section returns the nested map stored under key, creating it when absent.
func section(m map[string]interface{}, key string) map[string]interface{} {
	if s, ok := m[key].(map[string]interface{}); ok {
		return s
	}
	s := make(map[string]interface{})
	m[key] = s
	return s
}

// GetGlobalConfigDir returns the global config directory
func GetGlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, Name), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", Name), nil
}
