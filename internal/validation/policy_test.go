package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordPolicies(t *testing.T) {
	tests := []struct {
		name     string
		policy   PasswordPolicy
		password string
		want     bool
	}{
		{"none accepts anything", PolicyNone, "short", true},
		{"standard accepts all classes", PolicyStandard, "Abcd123!", true},
		{"standard accepts any symbol", PolicyStandard, "Abcd123#", true},
		{"standard rejects missing symbol", PolicyStandard, "Abcd1234", false},
		{"standard rejects missing upper", PolicyStandard, "abcd123!", false},
		{"standard rejects missing digit", PolicyStandard, "Abcdefg!", false},
		{"strict accepts listed symbol", PolicyStrict, "Abcd123!", true},
		{"strict rejects unlisted symbol", PolicyStrict, "Abcd123#", false},
		{"strict rejects listed plus unlisted", PolicyStrict, "Abcd123!#", false},
		{"strict rejects spaces", PolicyStrict, "Abcd 123!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Satisfied(tt.password))
		})
	}
}

func TestLookupPolicy(t *testing.T) {
	t.Run("finds policies case insensitively", func(t *testing.T) {
		p, err := LookupPolicy(" Strict ")
		require.NoError(t, err)
		assert.Equal(t, PolicyStrict, p)
	})

	t.Run("unknown policy lists the available ones", func(t *testing.T) {
		_, err := LookupPolicy("paranoid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "paranoid")
		assert.Contains(t, err.Error(), "standard")
	})

	t.Run("enabled reflects requirements", func(t *testing.T) {
		assert.False(t, PolicyNone.Enabled())
		assert.True(t, PolicyStandard.Enabled())
		assert.Equal(t, []string{"none", "standard", "strict"}, PolicyNames())
	})
}
