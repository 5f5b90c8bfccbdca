package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/domain/veterinary"
	"github.com/PawsProtect/service-welfare/internal/metrics"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// BookAppointmentRequest is the appointment form as submitted.
type BookAppointmentRequest struct {
	ClinicID string  `json:"clinic_id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Date     string  `json:"date"`
	TimeSlot string  `json:"time_slot"`
	PetName  string  `json:"pet_name"`
	PetType  *string `json:"pet_type"`
	Reason   string  `json:"reason"`
}

// AppointmentDTO is the response representation of a booking.
type AppointmentDTO struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Email      string                  `json:"email"`
	ClinicID   string                  `json:"clinic_id"`
	ClinicName string                  `json:"clinic_name"`
	Date       veterinary.CalendarDate `json:"date"`
	TimeSlot   string                  `json:"time_slot"`
	PetName    string                  `json:"pet_name"`
	PetType    domain.Optional[string] `json:"pet_type"`
	Reason     string                  `json:"reason"`
	CreatedAt  time.Time               `json:"created_at"`
}

// VeterinaryService handles clinic lookup and appointment booking.
type VeterinaryService struct {
	clinics      []veterinary.Clinic
	byID         map[string]veterinary.Clinic
	resolver     *veterinary.Resolver
	appointments veterinary.AppointmentRepository
	deps         Deps
}

// NewVeterinaryService creates a new VeterinaryService. The resolver and the
// booking dialogs share deps.Clock.
func NewVeterinaryService(
	clinics []veterinary.Clinic,
	availability veterinary.AvailabilityProvider,
	appointments veterinary.AppointmentRepository,
	deps Deps,
) *VeterinaryService {
	deps = deps.withDefaults()
	byID := make(map[string]veterinary.Clinic, len(clinics))
	for _, c := range clinics {
		byID[c.ID] = c
	}
	return &VeterinaryService{
		clinics:      clinics,
		byID:         byID,
		resolver:     veterinary.NewResolver(availability, deps.Clock),
		appointments: appointments,
		deps:         deps,
	}
}

// ListClinics returns the partner clinics.
func (s *VeterinaryService) ListClinics() []veterinary.Clinic {
	return append([]veterinary.Clinic{}, s.clinics...)
}

// GetClinic returns one clinic.
func (s *VeterinaryService) GetClinic(id string) (veterinary.Clinic, error) {
	c, ok := s.byID[id]
	if !ok {
		return veterinary.Clinic{}, domain.NewNotFoundError("clinic", id)
	}
	return c, nil
}

// Slots returns the bookable slots of a clinic on a YYYY-MM-DD date.
func (s *VeterinaryService) Slots(clinicID, rawDate string) (veterinary.SlotLookup, error) {
	if _, err := s.GetClinic(clinicID); err != nil {
		return veterinary.SlotLookup{}, err
	}
	date, err := veterinary.ParseDate(rawDate)
	if err != nil {
		return veterinary.SlotLookup{}, domain.NewFieldValidationError("date", "date must be formatted YYYY-MM-DD")
	}
	return s.resolver.Lookup(clinicID, date), nil
}

// SubmitBooking validates the form and appends the booking. Missing fields
// are reported in form order before anything is written. The slot must be
// one the clinic offers on that day, but other bookings of the same slot are
// not checked.
func (s *VeterinaryService) SubmitBooking(ctx context.Context, req BookAppointmentRequest) (dto *AppointmentDTO, err error) {
	defer func() { s.deps.Metrics.RecordBooking(req.ClinicID, metrics.Outcome(err, domain.IsValidation)) }()

	clinic, err := s.GetClinic(req.ClinicID)
	if err != nil {
		return nil, err
	}

	var date veterinary.CalendarDate
	var dateErr error
	if raw := strings.TrimSpace(req.Date); raw != "" {
		date, dateErr = veterinary.ParseDate(raw)
	}
	fields := veterinary.BookingFields{
		RequesterName:  req.Name,
		RequesterEmail: req.Email,
		Date:           date,
		TimeSlot:       req.TimeSlot,
		PetName:        req.PetName,
		PetType:        domain.FromPtr(req.PetType),
		Reason:         req.Reason,
	}
	if err := fields.Validate(); err != nil {
		var de *domain.DomainError
		if dateErr != nil && errors.As(err, &de) && de.Field == "date" {
			return nil, domain.NewFieldValidationError("date", "date must be formatted YYYY-MM-DD")
		}
		return nil, err
	}

	dialog := veterinary.NewDialog(s.resolver, s.appointments, s.deps.Clock)
	if err := dialog.Open(clinic); err != nil {
		return nil, err
	}
	if _, err := dialog.SelectDate(date); err != nil {
		return nil, err
	}
	if err := dialog.SelectSlot(req.TimeSlot); err != nil {
		return nil, err
	}
	appt, err := dialog.Submit(ctx, veterinary.RequesterDetails{
		Name:    req.Name,
		Email:   req.Email,
		PetName: req.PetName,
		PetType: fields.PetType,
		Reason:  req.Reason,
	})
	if err != nil {
		s.deps.Logger.Warn("appointment submission failed",
			zap.String("clinic_id", clinic.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.deps.Logger.Info("appointment booked",
		zap.String("appointment_id", appt.ID()),
		zap.String("clinic_id", clinic.ID),
		zap.Stringer("date", appt.Date()),
		zap.String("time_slot", appt.TimeSlot()),
	)
	result := toAppointmentDTO(appt)
	s.deps.publishEvent(ctx, EventAppointmentBooked, clinic.ID, result)
	return &result, nil
}

// ListAppointments returns every booking, newest first.
func (s *VeterinaryService) ListAppointments(ctx context.Context) ([]AppointmentDTO, error) {
	appts, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AppointmentDTO, len(appts))
	for i, a := range appts {
		out[i] = toAppointmentDTO(a)
	}
	return out, nil
}

func toAppointmentDTO(a *veterinary.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:         a.ID(),
		Name:       a.RequesterName(),
		Email:      a.RequesterEmail(),
		ClinicID:   a.ClinicID(),
		ClinicName: a.ClinicName(),
		Date:       a.Date(),
		TimeSlot:   a.TimeSlot(),
		PetName:    a.PetName(),
		PetType:    a.PetType(),
		Reason:     a.Reason(),
		CreatedAt:  a.CreatedAt(),
	}
}
