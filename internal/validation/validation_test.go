package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	msgRequired    = "Password is required"
	msgMinLength   = "Password must be at least 8 characters"
	msgComposition = "Password must contain uppercase, lowercase, number and special character"
)

func passwordField() *FieldValidator {
	return NewField("password",
		Required(msgRequired),
		MinLength(8, msgMinLength),
		Composition(PolicyStandard, msgComposition),
	)
}

func registrationForm() *FormValidator {
	return NewForm("register").
		AddField(NewField("fullName", Required("Full name is required"))).
		AddField(NewField("email", Pattern(EmailPattern, "Invalid email address"))).
		AddField(NewField("phoneNumber", Pattern(PhonePattern, "Invalid phone number"))).
		AddField(NewField("username",
			MinLength(4, "Username must be at least 4 characters"),
			Pattern(UsernamePattern, "Username can only contain letters, numbers and underscores"),
		)).
		AddField(NewField("password", MinLength(8, msgMinLength)))
}

func TestFieldValidator(t *testing.T) {
	t.Run("passes with no rules", func(t *testing.T) {
		f := NewField("notes")
		assert.Equal(t, "", f.ValidateValue(""))
		assert.Equal(t, 0, f.RuleCount())
	})

	t.Run("reports the first failing rule only", func(t *testing.T) {
		f := passwordField()

		assert.Equal(t, msgRequired, f.ValidateValue(""))
		assert.Equal(t, msgMinLength, f.ValidateValue("short"))
		assert.Equal(t, msgComposition, f.ValidateValue("longenoughbutsimple"))
		assert.Equal(t, "", f.ValidateValue("Abcd123!"))
	})

	t.Run("AddRule appends in order", func(t *testing.T) {
		f := NewField("code").
			AddRule(ExactLength(6, "six digits")).
			AddRule(Pattern(DigitsPattern, "digits only"))

		assert.Equal(t, 2, f.RuleCount())
		assert.Equal(t, "six digits", f.ValidateValue("12"))
		assert.Equal(t, "digits only", f.ValidateValue("12a456"))
		assert.Equal(t, "", f.ValidateValue("123456"))
	})
}

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value string
		want  bool
	}{
		{"required rejects empty", Required("r"), "", false},
		{"required rejects whitespace", Required("r"), "   ", false},
		{"required accepts text", Required("r"), "Jane", true},
		{"min length counts trimmed runes", MinLength(4, "m"), "  abc  ", false},
		{"min length accepts boundary", MinLength(4, "m"), "abcd", true},
		{"exact length rejects longer", ExactLength(6, "e"), "1234567", false},
		{"exact length accepts trimmed", ExactLength(6, "e"), " 123456 ", true},
		{"email pattern accepts address", Pattern(EmailPattern, "p"), "jane@x.com", true},
		{"email pattern rejects missing domain dot", Pattern(EmailPattern, "p"), "jane@x", false},
		{"email pattern rejects empty", Pattern(EmailPattern, "p"), "", false},
		{"phone pattern accepts formatted", Pattern(PhonePattern, "p"), "+1 555-123-4567", true},
		{"phone pattern rejects short", Pattern(PhonePattern, "p"), "123", false},
		{"username pattern rejects dash", Pattern(UsernamePattern, "p"), "jane-doe", false},
		{"pattern requires a full match", Pattern(`[0-9]{3}`, "p"), "1234", false},
		{"one of accepts member", OneOf([]string{"A+", "O-"}, "o"), "O-", true},
		{"one of accepts empty", OneOf([]string{"A+"}, "o"), "", true},
		{"one of rejects other", OneOf([]string{"A+"}, "o"), "B+", false},
		{"date accepts layout", Date("2006-01-02", "d"), "2026-10-15", true},
		{"date rejects garbage", Date("2006-01-02", "d"), "15/10/2026", false},
		{"date accepts empty", Date("2006-01-02", "d"), "", true},
		{"optional skips blank", Optional(Pattern(EmailPattern, "p")), "  ", true},
		{"optional checks text", Optional(Pattern(EmailPattern, "p")), "jane@", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Passes(tt.value, nil))
		})
	}
}

func TestEqualsField(t *testing.T) {
	form := NewForm("reset").
		AddField(NewField("newPassword", Required("required"))).
		AddField(NewField("confirmPassword", EqualsField("newPassword", "Passwords do not match")))

	t.Run("matching values pass", func(t *testing.T) {
		result := form.Validate(Values{"newPassword": "Abcd123!", "confirmPassword": "Abcd123!"})
		assert.True(t, result.Valid())
	})

	t.Run("mismatch is reported on the confirming field", func(t *testing.T) {
		result := form.Validate(Values{"newPassword": "Abcd123!", "confirmPassword": "Abcd123"})
		require.False(t, result.Valid())

		msg, ok := result.Error("confirmPassword")
		assert.True(t, ok)
		assert.Equal(t, "Passwords do not match", msg)
		_, ok = result.Error("newPassword")
		assert.False(t, ok)
	})
}

func TestFormValidator(t *testing.T) {
	t.Run("required field coverage", func(t *testing.T) {
		form := NewForm("profile").AddField(NewField("name", Required("Name is required")))

		for _, values := range []Values{{}, {"name": ""}, {"name": "   "}} {
			result := form.Validate(values)
			assert.False(t, result.Valid())
			assert.Equal(t, map[string]string{"name": "Name is required"}, result.Errors())
		}

		result := form.Validate(Values{"name": "Jane"})
		assert.True(t, result.Valid())
		assert.Empty(t, result.Errors())
	})

	t.Run("validation is deterministic", func(t *testing.T) {
		form := registrationForm()
		values := Values{"email": "nope", "username": "jane_99"}

		first := form.Validate(values)
		second := form.Validate(values)
		assert.Equal(t, first, second)
		assert.Equal(t, first.String(), second.String())
	})

	t.Run("results are not affected by later mutation", func(t *testing.T) {
		form := registrationForm()
		result := form.Validate(Values{})

		errs := result.Errors()
		errs["fullName"] = "changed"
		delete(errs, "email")

		msg, _ := result.Error("fullName")
		assert.Equal(t, "Full name is required", msg)
		_, ok := result.Error("email")
		assert.True(t, ok)
	})

	t.Run("registration end to end", func(t *testing.T) {
		form := registrationForm()

		bad := form.Validate(Values{
			"fullName":    "",
			"email":       "not-an-email",
			"phoneNumber": "123",
			"username":    "ab",
			"password":    "short",
		})
		assert.False(t, bad.Valid())
		assert.Equal(t, map[string]string{
			"fullName":    "Full name is required",
			"email":       "Invalid email address",
			"phoneNumber": "Invalid phone number",
			"username":    "Username must be at least 4 characters",
			"password":    msgMinLength,
		}, bad.Errors())

		good := form.Validate(Values{
			"fullName":    "Jane Doe",
			"email":       "jane@x.com",
			"phoneNumber": "+1 555-123-4567",
			"username":    "jane_99",
			"password":    "Abcd123!",
		})
		assert.True(t, good.Valid())
		assert.Empty(t, good.Errors())
		assert.Equal(t, "valid", good.String())
	})

	t.Run("fields keep registration order", func(t *testing.T) {
		form := registrationForm()
		assert.Equal(t, []string{"fullName", "email", "phoneNumber", "username", "password"}, form.Fields())
		assert.True(t, form.Has("email"))
		assert.False(t, form.Has("gender"))
	})

	t.Run("duplicate field registration panics", func(t *testing.T) {
		defer func() {
			r := recover()
			assert.NotNil(t, r, "expected panic for duplicate field")
			assert.Contains(t, r, "already registered")
		}()

		NewForm("dup").
			AddField(NewField("email")).
			AddField(NewField("email"))
	})
}

func TestUnknownField(t *testing.T) {
	form := registrationForm()

	t.Run("querying an unowned field fails loudly", func(t *testing.T) {
		f, err := form.Field("gender")
		assert.Nil(t, f)
		require.Error(t, err)
		assert.True(t, HasCode(err, ErrCodeUnknownField))
		assert.Contains(t, err.Error(), "gender")
	})

	t.Run("strict validation rejects unknown keys", func(t *testing.T) {
		_, err := form.ValidateStrict(Values{"fullName": "Jane", "zodiac": "leo", "aura": "blue"})
		require.Error(t, err)
		assert.Equal(t, ErrCodeUnknownField, ErrorCode(err))
		assert.Contains(t, err.Error(), `"aura", "zodiac"`)
	})

	t.Run("lenient validation ignores unknown keys", func(t *testing.T) {
		result := form.Validate(Values{"zodiac": "leo"})
		assert.False(t, result.Valid())
		_, ok := result.Error("zodiac")
		assert.False(t, ok)
	})

	t.Run("known fields pass the check", func(t *testing.T) {
		assert.NoError(t, form.CheckFields(Values{"email": "a@b.co"}))
		f, err := form.Field("email")
		require.NoError(t, err)
		assert.Equal(t, "email", f.Name)
	})
}
