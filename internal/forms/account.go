package forms

import (
	v "github.com/artisanexperiences/carebook/internal/validation"
	"github.com/artisanexperiences/carebook/internal/wizard"
)

const (
	FormLogin          = "login"
	FormRegister       = "register"
	FormForgotPassword = "forgot-password"
)

// Step ids double as the gateway operation names.
const (
	StepLogin       = "login"
	StepRegister    = "register"
	StepForgotEmail = "forgot-email"
	StepForgotCode  = "forgot-code"
	StepForgotReset = "forgot-reset"
)

const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPhoneNumber     = "phoneNumber"
	FieldDateOfBirth     = "dateOfBirth"
	FieldGender          = "gender"
	FieldCode            = "verificationCode"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
)

// DateLayout is the text form of every date field.
const DateLayout = "2006-01-02"

var Genders = plainOptions("Male", "Female", "Other", "Prefer not to say")

// usernameRules rejects blank names either way; withRequired reports them
// with a dedicated message instead of the length one.
func usernameRules(withRequired bool) []v.Rule {
	rules := []v.Rule{
		v.MinLength(4, "Username must be at least 4 characters"),
		v.Pattern(v.UsernamePattern, "Username can only contain letters, numbers and underscores"),
	}
	if withRequired {
		return append([]v.Rule{v.Required("Username is required")}, rules...)
	}
	return rules
}

// Login is the sign-in form.
func Login(p Policies) Definition {
	return Definition{
		Name:  FormLogin,
		Title: "Sign in",
		Steps: []StepSpec{
			singleStep(StepLogin, "Welcome back",
				Field{
					Name:        FieldUsername,
					Title:       "Username",
					Placeholder: "jane_99",
					Rules:       usernameRules(true),
				},
				Field{
					Name:   FieldPassword,
					Title:  "Password",
					Secret: true,
					Rules: passwordRules(p.Login,
						"Password must contain uppercase, lowercase, number and special character",
						v.Required("Password is required"),
						v.MinLength(8, "Password must be at least 8 characters"),
					),
				},
			),
		},
	}
}

// Registration is the account creation form.
func Registration(p Policies) Definition {
	return Definition{
		Name:  FormRegister,
		Title: "Create account",
		Steps: []StepSpec{
			singleStep(StepRegister, "Your details",
				Field{
					Name:  FieldFullName,
					Title: "Full name",
					Rules: []v.Rule{v.Required("Full name is required")},
				},
				Field{
					Name:        FieldEmail,
					Title:       "Email",
					Placeholder: "jane@example.com",
					Rules:       []v.Rule{v.Pattern(v.EmailPattern, "Invalid email address")},
				},
				Field{
					Name:        FieldDateOfBirth,
					Title:       "Date of birth",
					Placeholder: DateLayout,
					Rules:       []v.Rule{v.Date(DateLayout, "Date of birth must look like YYYY-MM-DD")},
				},
				Field{
					Name:        FieldPhoneNumber,
					Title:       "Phone number",
					Placeholder: "+1 555-123-4567",
					Rules:       []v.Rule{v.Pattern(v.PhonePattern, "Invalid phone number")},
				},
				Field{
					Name:    FieldGender,
					Title:   "Gender",
					Options: Genders,
					Rules:   []v.Rule{v.OneOf(optionValues(Genders), "Select a gender from the list")},
				},
				Field{
					Name:  FieldUsername,
					Title: "Username",
					Rules: usernameRules(false),
				},
				Field{
					Name:   FieldPassword,
					Title:  "Password",
					Secret: true,
					Rules: passwordRules(p.Register,
						"Password must contain uppercase, lowercase, number and special character",
						v.MinLength(8, "Password must be at least 8 characters"),
					),
				},
			),
		},
	}
}

// ForgotPassword is the three-step reset flow: email, emailed code, new password.
func ForgotPassword(p Policies) Definition {
	return Definition{
		Name:        FormForgotPassword,
		Title:       "Reset password",
		Description: "We will email you a verification code",
		Steps: []StepSpec{
			{
				ID:          StepForgotEmail,
				Title:       "Forgot password",
				Description: "Enter the email address linked to your account",
				Fields: []Field{{
					Name:        FieldEmail,
					Title:       "Email",
					Placeholder: "jane@example.com",
					Rules:       []v.Rule{v.Pattern(v.EmailPattern, "Please enter a valid email address")},
				}},
				OnSuccess:   StepForgotCode,
				OnBack:      wizard.Exit,
				CallGateway: true,
			},
			{
				ID:          StepForgotCode,
				Title:       "Verify code",
				Description: "Enter the 6-digit code sent to your email",
				Fields: []Field{{
					Name:        FieldCode,
					Title:       "Verification code",
					Placeholder: "000000",
					Rules: []v.Rule{
						v.ExactLength(6, "Please enter the 6-digit verification code"),
						v.Pattern(v.DigitsPattern, "Verification code can only contain digits"),
					},
				}},
				OnSuccess:   StepForgotReset,
				OnBack:      StepForgotEmail,
				CallGateway: true,
			},
			{
				ID:    StepForgotReset,
				Title: "New password",
				Fields: []Field{
					{
						Name:   FieldNewPassword,
						Title:  "New password",
						Secret: true,
						Rules: passwordRules(p.Reset,
							"Password must contain at least 8 characters, including uppercase, lowercase, number and special character",
							v.Required("Password is required"),
							v.MinLength(8, "Password must be at least 8 characters"),
						),
					},
					{
						Name:   FieldConfirmPassword,
						Title:  "Confirm password",
						Secret: true,
						Rules: []v.Rule{
							v.Required("Please confirm your password"),
							v.EqualsField(FieldNewPassword, "Passwords do not match"),
						},
					},
				},
				OnSuccess: wizard.Submit,
				OnBack:    StepForgotCode,
			},
		},
	}
}
