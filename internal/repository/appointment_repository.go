package repository

import (
	"context"
	"time"

	"github.com/PawsProtect/service-welfare/internal/docstore"
	"github.com/PawsProtect/service-welfare/internal/domain/veterinary"
)

type appointmentDocument struct {
	Name       string    `mapstructure:"name" validate:"required"`
	Email      string    `mapstructure:"email" validate:"required"`
	ClinicID   string    `mapstructure:"clinicId" validate:"required"`
	ClinicName string    `mapstructure:"clinicName"`
	Date       string    `mapstructure:"date" validate:"required"`
	TimeSlot   string    `mapstructure:"timeSlot" validate:"required"`
	PetName    string    `mapstructure:"petName" validate:"required"`
	PetType    *string   `mapstructure:"petType"`
	Reason     string    `mapstructure:"reason"`
	CreatedAt  time.Time `mapstructure:"createdAt" validate:"required"`
}

// AppointmentRepository stores bookings in the appointments collection.
type AppointmentRepository struct {
	store docstore.Store
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(store docstore.Store) *AppointmentRepository {
	return &AppointmentRepository{store: store}
}

// Create appends the booking.
func (r *AppointmentRepository) Create(ctx context.Context, appt *veterinary.Appointment) (string, error) {
	id, err := r.store.Create(ctx, docstore.Appointments, toAppointmentDocument(appt))
	if err != nil {
		return "", storeError("appointment", "", err)
	}
	return id, nil
}

// List returns every booking, newest first.
func (r *AppointmentRepository) List(ctx context.Context) ([]*veterinary.Appointment, error) {
	docs, err := r.store.Query(ctx, docstore.Query{Collection: docstore.Appointments, OrderBy: "createdAt", Desc: true})
	if err != nil {
		return nil, storeError("appointment", "", err)
	}
	out := make([]*veterinary.Appointment, 0, len(docs))
	for _, doc := range docs {
		appt, err := toAppointmentDomain(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, appt)
	}
	return out, nil
}

func toAppointmentDocument(a *veterinary.Appointment) map[string]any {
	return map[string]any{
		"name":       a.RequesterName(),
		"email":      a.RequesterEmail(),
		"clinicId":   a.ClinicID(),
		"clinicName": a.ClinicName(),
		"date":       a.Date().String(),
		"timeSlot":   a.TimeSlot(),
		"petName":    a.PetName(),
		"petType":    nullable(a.PetType()),
		"reason":     a.Reason(),
		"createdAt":  docstore.FormatTime(a.CreatedAt()),
	}
}

func toAppointmentDomain(doc docstore.Document) (*veterinary.Appointment, error) {
	m, err := decodeDocument[appointmentDocument](doc)
	if err != nil {
		return nil, err
	}
	date, err := veterinary.ParseDate(m.Date)
	if err != nil {
		return nil, malformed(doc, err)
	}
	return veterinary.ReconstructAppointment(
		doc.ID,
		m.Name,
		m.Email,
		m.ClinicID,
		m.ClinicName,
		date,
		m.TimeSlot,
		m.PetName,
		optionalString(m.PetType),
		m.Reason,
		m.CreatedAt,
	), nil
}
