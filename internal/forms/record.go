package forms

import (
	v "github.com/artisanexperiences/carebook/internal/validation"
)

const (
	FormPatientRecord = "patient-record"
	StepRecord        = "patient-record"

	FieldName       = "name"
	FieldEmailID    = "emailId"
	FieldBloodGroup = "bloodGroup"
	FieldHeight     = "height"
	FieldWeight     = "weight"
	FieldAddress    = "address"
)

var BloodGroups = plainOptions("A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-")

// PatientRecord is the personal-details edit form of a patient record.
func PatientRecord(_ Policies) Definition {
	return Definition{
		Name:  FormPatientRecord,
		Title: "Patient record",
		Steps: []StepSpec{
			singleStep(StepRecord, "Personal details",
				Field{
					Name:  FieldName,
					Title: "Name",
					Rules: []v.Rule{v.Required("Name is required")},
				},
				Field{
					Name:  FieldPhoneNumber,
					Title: "Phone number",
					Rules: []v.Rule{v.Optional(v.Pattern(v.PhonePattern, "Invalid phone number"))},
				},
				Field{
					Name:  FieldEmailID,
					Title: "Email",
					Rules: []v.Rule{v.Optional(v.Pattern(v.EmailPattern, "Invalid email address"))},
				},
				Field{
					Name:        FieldDateOfBirth,
					Title:       "Date of birth",
					Placeholder: DateLayout,
					Rules:       []v.Rule{v.Date(DateLayout, "Date of birth must look like YYYY-MM-DD")},
				},
				Field{
					Name:    FieldBloodGroup,
					Title:   "Blood group",
					Options: BloodGroups,
					Rules:   []v.Rule{v.OneOf(optionValues(BloodGroups), "Unknown blood group")},
				},
				Field{
					Name:    FieldGender,
					Title:   "Gender",
					Options: Genders,
					Rules:   []v.Rule{v.OneOf(optionValues(Genders), "Select a gender from the list")},
				},
				Field{
					Name:        FieldHeight,
					Title:       "Height (cm)",
					Placeholder: "175",
					Rules:       []v.Rule{v.Pattern(`[0-9]{0,3}(\.[0-9])?`, "Height must be a number")},
				},
				Field{
					Name:        FieldWeight,
					Title:       "Weight (kg)",
					Placeholder: "70",
					Rules:       []v.Rule{v.Pattern(`[0-9]{0,3}(\.[0-9])?`, "Weight must be a number")},
				},
				Field{
					Name:  FieldAddress,
					Title: "Address",
				},
			),
		},
	}
}
