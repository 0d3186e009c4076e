package forms

import (
	v "github.com/artisanexperiences/carebook/internal/validation"
)

const (
	FormAppointment = "appointment"
	StepBook        = "book"

	FieldPatientName     = "patientName"
	FieldAge             = "age"
	FieldDescription     = "description"
	FieldAppointmentType = "appointmentType"
	FieldDate            = "date"
	FieldTimeSlot        = "timeSlot"
)

// AppointmentType is a bookable visit kind.
type AppointmentType struct {
	ID       string
	Title    string
	Price    string
	Duration string
}

var AppointmentTypes = []AppointmentType{
	{ID: "regular", Title: "Regular Visit", Price: "$100", Duration: "30 min"},
	{ID: "consultation", Title: "Consultation", Price: "$150", Duration: "45 min"},
	{ID: "emergency", Title: "Emergency", Price: "$200", Duration: "60 min"},
}

var TimeSlots = plainOptions(
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "02:00 PM", "02:30 PM",
	"03:00 PM", "03:30 PM", "04:00 PM",
)

func appointmentTypeOptions() []Option {
	opts := make([]Option, len(AppointmentTypes))
	for i, t := range AppointmentTypes {
		opts[i] = Option{
			Label: t.Title + " · " + t.Price + " · " + t.Duration,
			Value: t.ID,
		}
	}
	return opts
}

// Appointment is the booking form.
func Appointment(_ Policies) Definition {
	types := appointmentTypeOptions()

	return Definition{
		Name:  FormAppointment,
		Title: "Book appointment",
		Steps: []StepSpec{
			singleStep(StepBook, "Appointment details",
				Field{
					Name:  FieldPatientName,
					Title: "Patient name",
					Rules: []v.Rule{v.Required("Please enter patient name")},
				},
				Field{
					Name:  FieldPhoneNumber,
					Title: "Phone number",
					Rules: []v.Rule{v.Required("Please enter phone number")},
				},
				Field{
					Name:  FieldEmail,
					Title: "Email",
					Rules: []v.Rule{
						v.Required("Please enter email"),
						v.Pattern(v.EmailPattern, "Please enter a valid email"),
					},
				},
				Field{
					Name:  FieldAge,
					Title: "Age",
					Rules: []v.Rule{v.Pattern(`[0-9]{0,3}`, "Age must be a number")},
				},
				Field{
					Name:    FieldAppointmentType,
					Title:   "Appointment type",
					Options: types,
					Rules: []v.Rule{
						v.Required("Please select an appointment type"),
						v.OneOf(optionValues(types), "Unknown appointment type"),
					},
				},
				Field{
					Name:        FieldDate,
					Title:       "Date",
					Placeholder: DateLayout,
					Rules: []v.Rule{
						v.Required("Please select a date"),
						v.Date(DateLayout, "Date must look like YYYY-MM-DD"),
					},
				},
				Field{
					Name:    FieldTimeSlot,
					Title:   "Time slot",
					Options: TimeSlots,
					Rules: []v.Rule{
						v.Required("Please select a time slot"),
						v.OneOf(optionValues(TimeSlots), "Unknown time slot"),
					},
				},
				Field{
					Name:  FieldDescription,
					Title: "Describe your symptoms",
				},
			),
		},
	}
}
