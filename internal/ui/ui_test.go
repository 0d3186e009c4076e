package ui

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanexperiences/carebook/internal/forms"
	"github.com/artisanexperiences/carebook/internal/validation"
)

func TestStepInputs_Validator(t *testing.T) {
	def := forms.ForgotPassword(forms.DefaultPolicies())
	step, ok := def.Step(forms.StepForgotReset)
	require.True(t, ok)

	in := newStepInputs(step, validation.Values{forms.FieldNewPassword: "Secret1!"})
	confirm, err := step.Validator().Field(forms.FieldConfirmPassword)
	require.NoError(t, err)

	check := in.validator(confirm)

	t.Run("reads sibling inputs", func(t *testing.T) {
		assert.NoError(t, check("Secret1!"))

		err := check("Secret2!")
		require.Error(t, err)
		assert.Equal(t, "Passwords do not match", err.Error())
	})

	t.Run("follows edits to the sibling", func(t *testing.T) {
		*in.values[forms.FieldNewPassword] = "Secret2!"
		assert.NoError(t, check("Secret2!"))
	})

	t.Run("first failing rule wins", func(t *testing.T) {
		err := check("")
		require.Error(t, err)
		assert.Equal(t, "Please confirm your password", err.Error())
	})
}

func TestStepInputs_SeedAndSnapshot(t *testing.T) {
	step, _ := forms.Login(forms.DefaultPolicies()).Step(forms.StepLogin)

	in := newStepInputs(step, validation.Values{"username": "jane_99", "ignored": "x"})

	assert.Equal(t, []string{"username", "password"}, in.order)
	assert.Equal(t, validation.Values{"username": "jane_99", "password": ""}, in.snapshot())
	assert.Len(t, in.fields(step), 2)
}

func TestSelectOptions(t *testing.T) {
	step, _ := forms.Appointment(forms.DefaultPolicies()).Step(forms.StepBook)

	for _, f := range step.Fields {
		switch f.Name {
		case forms.FieldTimeSlot:
			assert.Len(t, selectOptions(f), len(forms.TimeSlots), "required select has no empty choice")
		}
	}

	record, _ := forms.PatientRecord(forms.DefaultPolicies()).Step(forms.StepRecord)
	for _, f := range record.Fields {
		if f.Name == forms.FieldBloodGroup {
			opts := selectOptions(f)
			assert.Len(t, opts, len(forms.BloodGroups)+1)
			assert.Equal(t, "", opts[0].Value)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	DisableColor()
	form := validation.NewForm("login").
		AddField(validation.NewField("username", validation.Required("Username is required"))).
		AddField(validation.NewField("password", validation.Required("Password is required")))

	out := RenderErrors(form.Validate(validation.Values{}))

	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Username is required")
	assert.Contains(t, out, "Password is required")
	assert.Less(t, bytes.Index([]byte(out), []byte("password")), bytes.Index([]byte(out), []byte("username")))
}

func TestRenderTable(t *testing.T) {
	DisableColor()
	out := RenderTable([]string{"FORM", "STEPS"}, [][]string{{"login", "1"}})
	assert.Contains(t, out, "FORM")
	assert.Contains(t, out, "login")
}

func TestPrintHelpers(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })

	PrintSuccess("Signed in")
	PrintErrorWithHint("Submission failed", "try again")

	assert.Contains(t, buf.String(), "Signed in")
	assert.Contains(t, buf.String(), "Submission failed")
	assert.Contains(t, buf.String(), "try again")
}

func TestAbort(t *testing.T) {
	wrapped := fmt.Errorf("prompt: %w", huh.ErrUserAborted)

	assert.True(t, IsAbort(wrapped))
	assert.NoError(t, NormalizeAbort(wrapped))

	other := errors.New("boom")
	assert.False(t, IsAbort(other))
	assert.Equal(t, other, NormalizeAbort(other))
}
