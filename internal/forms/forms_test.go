package forms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanexperiences/carebook/internal/validation"
	"github.com/artisanexperiences/carebook/internal/wizard"
)

func TestRegistry_FormRegistration(t *testing.T) {
	t.Run("all expected forms are registered", func(t *testing.T) {
		assert.Equal(t, []string{
			"appointment",
			"forgot-password",
			"login",
			"patient-record",
			"register",
		}, ListRegistered())
	})

	t.Run("create returns the named definition", func(t *testing.T) {
		for _, name := range ListRegistered() {
			def, err := Create(name, DefaultPolicies())
			require.NoError(t, err, name)
			assert.Equal(t, name, def.Name)
			assert.NotEmpty(t, def.Steps, name)
		}
	})

	t.Run("unregistered form returns error", func(t *testing.T) {
		_, err := Create("nonexistent", DefaultPolicies())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown form")
		assert.Contains(t, err.Error(), "nonexistent")
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		assert.PanicsWithValue(t, `form "login" already registered`, func() {
			Register(FormLogin, Login)
		})
	})
}

func TestDefinitions_BuildValidWizards(t *testing.T) {
	noop := wizard.GatewayFunc(func(context.Context, string, map[string]string) error { return nil })

	for _, name := range ListRegistered() {
		t.Run(name, func(t *testing.T) {
			def, err := Create(name, DefaultPolicies())
			require.NoError(t, err)

			c, err := def.NewWizard(noop)
			require.NoError(t, err)
			assert.Equal(t, def.Steps[0].ID, c.State().CurrentStep)

			for _, s := range def.Steps {
				assert.Equal(t, s.FieldNames(), s.Validator().Fields())
			}
		})
	}
}

func TestPoliciesByName(t *testing.T) {
	p, err := PoliciesByName("strict", "STANDARD", " none ")
	require.NoError(t, err)
	assert.Equal(t, validation.PolicyStrict, p.Login)
	assert.Equal(t, validation.PolicyStandard, p.Register)
	assert.Equal(t, validation.PolicyNone, p.Reset)

	_, err = PoliciesByName("standard", "weak", "strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register policy")
}

func validate(t *testing.T, def Definition, stepID string, values validation.Values) validation.Result {
	t.Helper()
	step, ok := def.Step(stepID)
	require.True(t, ok, "step %q", stepID)
	return step.Validator().Validate(values)
}

func TestLogin(t *testing.T) {
	def := Login(DefaultPolicies())

	tests := []struct {
		name     string
		values   validation.Values
		field    string
		expected string
	}{
		{"empty username", validation.Values{"password": "Secret1!"}, FieldUsername, "Username is required"},
		{"short username", validation.Values{"username": "ab", "password": "Secret1!"}, FieldUsername, "Username must be at least 4 characters"},
		{"bad username", validation.Values{"username": "jane doe", "password": "Secret1!"}, FieldUsername, "Username can only contain letters, numbers and underscores"},
		{"empty password", validation.Values{"username": "jane_99"}, FieldPassword, "Password is required"},
		{"short password", validation.Values{"username": "jane_99", "password": "Ab1!"}, FieldPassword, "Password must be at least 8 characters"},
		{"weak password", validation.Values{"username": "jane_99", "password": "password1"}, FieldPassword, "Password must contain uppercase, lowercase, number and special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validate(t, def, StepLogin, tt.values)
			msg, ok := result.Error(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.expected, msg)
		})
	}

	t.Run("valid credentials", func(t *testing.T) {
		result := validate(t, def, StepLogin, validation.Values{"username": "jane_99", "password": "Secret1!"})
		assert.True(t, result.Valid(), result.String())
	})

	t.Run("policy none accepts any long password", func(t *testing.T) {
		p := DefaultPolicies()
		p.Login = validation.PolicyNone
		result := validate(t, Login(p), StepLogin, validation.Values{"username": "jane_99", "password": "password"})
		assert.True(t, result.Valid(), result.String())
	})
}

func TestRegistration(t *testing.T) {
	def := Registration(DefaultPolicies())

	t.Run("empty form", func(t *testing.T) {
		result := validate(t, def, StepRegister, validation.Values{})
		assert.Equal(t, []string{FieldEmail, FieldFullName, FieldPassword, FieldPhoneNumber, FieldUsername}, result.Failed())
	})

	t.Run("all five errors then corrected", func(t *testing.T) {
		result := validate(t, def, StepRegister, validation.Values{
			"fullName":    "",
			"email":       "not-an-email",
			"phoneNumber": "123",
			"username":    "ab",
			"password":    "short",
		})
		assert.Len(t, result.Errors(), 5)

		result = validate(t, def, StepRegister, validation.Values{
			"fullName":    "Jane Doe",
			"email":       "jane@x.com",
			"phoneNumber": "+1 555-123-4567",
			"username":    "jane_99",
			"password":    "Abcd123!",
		})
		assert.True(t, result.Valid(), result.String())
		assert.Empty(t, result.Errors())
	})

	t.Run("blank username is rejected", func(t *testing.T) {
		for _, username := range []string{"", "   "} {
			result := validate(t, def, StepRegister, validation.Values{
				"fullName":    "Jane Doe",
				"email":       "jane@x.com",
				"phoneNumber": "+1 555-123-4567",
				"username":    username,
				"password":    "password",
			})
			assert.False(t, result.Valid(), "username %q", username)
			assert.Equal(t, map[string]string{
				FieldUsername: "Username must be at least 4 characters",
			}, result.Errors())
		}
	})

	t.Run("email-shaped usernames fail both forms", func(t *testing.T) {
		result := validate(t, Login(DefaultPolicies()), StepLogin, validation.Values{
			"username": "jane@x.com",
			"password": "Secret1!",
		})
		msg, _ := result.Error(FieldUsername)
		assert.Equal(t, "Username can only contain letters, numbers and underscores", msg)

		result = validate(t, def, StepRegister, validation.Values{
			"fullName":    "Jane Doe",
			"email":       "jane@x.com",
			"phoneNumber": "+1 555-123-4567",
			"username":    "jane@x.com",
			"password":    "password",
		})
		msg, _ = result.Error(FieldUsername)
		assert.Equal(t, "Username can only contain letters, numbers and underscores", msg)
	})

	t.Run("optional fields are checked when present", func(t *testing.T) {
		result := validate(t, def, StepRegister, validation.Values{
			"fullName":    "Jane Doe",
			"email":       "jane@",
			"phoneNumber": "123",
			"dateOfBirth": "31/01/1990",
			"gender":      "Robot",
			"username":    "jane",
			"password":    "password",
		})
		assert.Equal(t, map[string]string{
			"email":       "Invalid email address",
			"phoneNumber": "Invalid phone number",
			"dateOfBirth": "Date of birth must look like YYYY-MM-DD",
			"gender":      "Select a gender from the list",
		}, result.Errors())
	})
}

func TestAppointment(t *testing.T) {
	def := Appointment(DefaultPolicies())

	valid := validation.Values{
		"patientName":     "Jane Doe",
		"phoneNumber":     "+1 555-123-4567",
		"email":           "jane@example.com",
		"age":             "34",
		"appointmentType": "consultation",
		"date":            "2026-11-02",
		"timeSlot":        "10:30 AM",
	}

	t.Run("valid booking", func(t *testing.T) {
		result := validate(t, def, StepBook, valid)
		assert.True(t, result.Valid(), result.String())
	})

	t.Run("required fields", func(t *testing.T) {
		result := validate(t, def, StepBook, validation.Values{})
		assert.Equal(t, "Please enter patient name", result.Errors()[FieldPatientName])
		assert.Equal(t, "Please enter phone number", result.Errors()[FieldPhoneNumber])
		assert.Equal(t, "Please enter email", result.Errors()[FieldEmail])
		assert.Equal(t, "Please select a time slot", result.Errors()[FieldTimeSlot])
		assert.NotContains(t, result.Errors(), FieldDescription)
		assert.NotContains(t, result.Errors(), FieldAge)
	})

	t.Run("unknown slot", func(t *testing.T) {
		values := valid.Clone()
		values["timeSlot"] = "01:00 PM"
		result := validate(t, def, StepBook, values)
		msg, _ := result.Error(FieldTimeSlot)
		assert.Equal(t, "Unknown time slot", msg)
	})

	t.Run("every type has a selectable option", func(t *testing.T) {
		step, _ := def.Step(StepBook)
		for _, f := range step.Fields {
			if f.Name == FieldAppointmentType {
				assert.Len(t, f.Options, len(AppointmentTypes))
			}
		}
	})
}

func TestPatientRecord(t *testing.T) {
	def := PatientRecord(DefaultPolicies())

	result := validate(t, def, StepRecord, validation.Values{
		"name":       "Jane Doe",
		"bloodGroup": "AB+",
		"height":     "172.5",
		"weight":     "64",
	})
	assert.True(t, result.Valid(), result.String())

	result = validate(t, def, StepRecord, validation.Values{
		"bloodGroup": "C+",
		"height":     "tall",
	})
	assert.Equal(t, []string{FieldBloodGroup, FieldHeight, FieldName}, result.Failed())
}

func TestForgotPassword(t *testing.T) {
	def := ForgotPassword(DefaultPolicies())
	require.Len(t, def.Steps, 3)

	t.Run("step chain", func(t *testing.T) {
		assert.Equal(t, wizard.Exit, def.Steps[0].OnBack)
		assert.Equal(t, StepForgotCode, def.Steps[0].OnSuccess)
		assert.Equal(t, StepForgotEmail, def.Steps[1].OnBack)
		assert.Equal(t, StepForgotReset, def.Steps[1].OnSuccess)
		assert.Equal(t, wizard.Submit, def.Steps[2].OnSuccess)
	})

	t.Run("code must be six digits", func(t *testing.T) {
		for _, code := range []string{"12345", "1234567", ""} {
			result := validate(t, def, StepForgotCode, validation.Values{FieldCode: code})
			msg, _ := result.Error(FieldCode)
			assert.Equal(t, "Please enter the 6-digit verification code", msg, code)
		}

		result := validate(t, def, StepForgotCode, validation.Values{FieldCode: "12a456"})
		msg, _ := result.Error(FieldCode)
		assert.Equal(t, "Verification code can only contain digits", msg)

		result = validate(t, def, StepForgotCode, validation.Values{FieldCode: "123456"})
		assert.True(t, result.Valid())
	})

	t.Run("strict reset password", func(t *testing.T) {
		tests := []struct {
			password string
			valid    bool
		}{
			{"Secret1!", true},
			{"Secret1#", false},
			{"secret1!", false},
			{"Secret!!", false},
		}
		for _, tt := range tests {
			result := validate(t, def, StepForgotReset, validation.Values{
				FieldNewPassword:     tt.password,
				FieldConfirmPassword: tt.password,
			})
			assert.Equal(t, tt.valid, result.Valid(), tt.password)
		}
	})

	t.Run("confirmation must match", func(t *testing.T) {
		result := validate(t, def, StepForgotReset, validation.Values{
			FieldNewPassword:     "Secret1!",
			FieldConfirmPassword: "Secret1?",
		})
		msg, _ := result.Error(FieldConfirmPassword)
		assert.Equal(t, "Passwords do not match", msg)
	})
}
