package credentials

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Key is the store key holding the remembered login.
const Key = "userCredentials"

// Saved is the remembered login record.
type Saved struct {
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	RememberMe bool   `yaml:"remember_me"`
}

// Load returns the remembered login. ok is false when nothing is stored or the
// record was saved without remember-me.
func Load(store Store) (saved Saved, ok bool, err error) {
	raw, found := store.Get(Key)
	if !found || raw == "" {
		return Saved{}, false, nil
	}

	if err := yaml.Unmarshal([]byte(raw), &saved); err != nil {
		return Saved{}, false, fmt.Errorf("decoding saved credentials: %w", err)
	}
	if !saved.RememberMe {
		return Saved{}, false, nil
	}
	return saved, true, nil
}

// Remember stores the login for the next attempt.
func Remember(store Store, username, password string) error {
	data, err := yaml.Marshal(Saved{
		Username:   username,
		Password:   password,
		RememberMe: true,
	})
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := store.Set(Key, string(data)); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// Forget removes any remembered login.
func Forget(store Store) error {
	if err := store.Clear(Key); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// Apply remembers or forgets the login depending on remember, as the login
// screen does after a successful sign-in.
func Apply(store Store, remember bool, username, password string) error {
	if remember {
		return Remember(store, username, password)
	}
	return Forget(store)
}
