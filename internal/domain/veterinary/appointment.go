package veterinary

import (
	"context"
	"strings"
	"time"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// BookingFields is the raw input of the appointment form.
type BookingFields struct {
	RequesterName  string
	RequesterEmail string
	Date           CalendarDate
	TimeSlot       string
	PetName        string
	PetType        domain.Optional[string]
	Reason         string
}

// Validate fails fast on the first missing required field, in form order.
func (f BookingFields) Validate() error {
	switch {
	case strings.TrimSpace(f.RequesterName) == "":
		return domain.NewFieldValidationError("name", "your name is required")
	case strings.TrimSpace(f.RequesterEmail) == "":
		return domain.NewFieldValidationError("email", "your email is required")
	case f.Date.IsZero():
		return domain.NewFieldValidationError("date", "an appointment date must be chosen")
	case strings.TrimSpace(f.TimeSlot) == "":
		return domain.NewFieldValidationError("time_slot", "a time slot must be chosen")
	case strings.TrimSpace(f.PetName) == "":
		return domain.NewFieldValidationError("pet_name", "pet name is required")
	case strings.TrimSpace(f.Reason) == "":
		return domain.NewFieldValidationError("reason", "reason for the visit is required")
	}
	return nil
}

// Appointment is a booked veterinary visit. It is created once and never
// mutated.
type Appointment struct {
	id             string
	requesterName  string
	requesterEmail string
	clinicID       string
	clinicName     string
	date           CalendarDate
	timeSlot       string
	petName        string
	petType        domain.Optional[string]
	reason         string
	createdAt      time.Time
}

// NewAppointment validates fields and stamps the creation time. The slot is
// not checked against the clinic's table or against other bookings.
func NewAppointment(clinic Clinic, fields BookingFields, now time.Time) (*Appointment, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if err := clinic.Validate(); err != nil {
		return nil, domain.NewFieldValidationError("clinic", err.Error())
	}

	petType := fields.PetType
	if v, ok := petType.Get(); ok && strings.TrimSpace(v) == "" {
		petType = domain.None[string]()
	}

	return &Appointment{
		requesterName:  strings.TrimSpace(fields.RequesterName),
		requesterEmail: strings.TrimSpace(fields.RequesterEmail),
		clinicID:       clinic.ID,
		clinicName:     clinic.Name,
		date:           fields.Date,
		timeSlot:       fields.TimeSlot,
		petName:        strings.TrimSpace(fields.PetName),
		petType:        petType,
		reason:         strings.TrimSpace(fields.Reason),
		createdAt:      now.UTC(),
	}, nil
}

// ReconstructAppointment rebuilds an Appointment from persistence (no validation).
func ReconstructAppointment(
	id, requesterName, requesterEmail, clinicID, clinicName string,
	date CalendarDate,
	timeSlot, petName string,
	petType domain.Optional[string],
	reason string,
	createdAt time.Time,
) *Appointment {
	return &Appointment{
		id:             id,
		requesterName:  requesterName,
		requesterEmail: requesterEmail,
		clinicID:       clinicID,
		clinicName:     clinicName,
		date:           date,
		timeSlot:       timeSlot,
		petName:        petName,
		petType:        petType,
		reason:         reason,
		createdAt:      createdAt,
	}
}

// --- Getters ---

func (a *Appointment) ID() string { return a.id }
func (a *Appointment) RequesterName() string { return a.requesterName }
func (a *Appointment) RequesterEmail() string { return a.requesterEmail }
func (a *Appointment) ClinicID() string { return a.clinicID }
func (a *Appointment) ClinicName() string { return a.clinicName }
func (a *Appointment) Date() CalendarDate { return a.date }
func (a *Appointment) TimeSlot() string { return a.timeSlot }
func (a *Appointment) PetName() string { return a.petName }
func (a *Appointment) PetType() domain.Optional[string] { return a.petType }
func (a *Appointment) Reason() string { return a.reason }
func (a *Appointment) CreatedAt() time.Time { return a.createdAt }

// AppointmentRepository persists appointments in the document store.
type AppointmentRepository interface {
	// Create appends the appointment and returns the store-assigned ID.
	// There is no uniqueness check on (clinic, date, slot).
	Create(ctx context.Context, appt *Appointment) (string, error)
	// List returns every appointment, newest first.
	List(ctx context.Context) ([]*Appointment, error)
}
