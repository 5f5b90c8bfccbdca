package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PawsProtect/service-welfare/internal/domain/veterinary"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
	"github.com/PawsProtect/service-welfare/internal/seed"
)

func newVeterinaryService(t *testing.T, repo veterinary.AppointmentRepository, pub EventPublisher, m Metrics) *VeterinaryService {
	t.Helper()
	data, err := seed.Load("")
	require.NoError(t, err)
	deps := Deps{Clock: veterinary.FixedClock{At: testNow}, Metrics: m, Topic: "pawsprotect.events"}
	if pub != nil {
		deps.Publisher = pub
	}
	return NewVeterinaryService(data.Clinics, data.Templates, repo, deps)
}

func validBooking() BookAppointmentRequest {
	return BookAppointmentRequest{
		ClinicID: "2",
		Name:     "Sam",
		Email:    "sam@example.com",
		Date:     "2026-10-15",
		TimeSlot: "10:30 AM",
		PetName:  "Biscuit",
		Reason:   "Vaccination",
	}
}

func TestSlots_ClinicTwo(t *testing.T) {
	svc := newVeterinaryService(t, &mockAppointmentRepo{}, nil, nil)

	lookup, err := svc.Slots("2", "2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, []string{"8:00 AM", "10:30 AM", "3:00 PM", "5:30 PM"}, lookup.Slots)
	assert.Equal(t, veterinary.SlotsAvailable, lookup.State)

	lookup, err = svc.Slots("2", "2026-10-25")
	require.NoError(t, err)
	assert.Empty(t, lookup.Slots)
	assert.Equal(t, veterinary.SlotsNoneAvailable, lookup.State)

	_, err = svc.Slots("2", "15/10/2026")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Slots("99", "2026-10-15")
	assert.True(t, domain.IsNotFound(err))
}

func TestSubmitBooking_Success(t *testing.T) {
	repo := &mockAppointmentRepo{}
	pub := &mockPublisher{}
	m := &mockMetrics{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*veterinary.Appointment")).Return("appt-42", nil).Once()
	pub.On("Publish", mock.Anything, "pawsprotect.events", "2", eventOfType(EventAppointmentBooked)).Return(nil).Once()

	svc := newVeterinaryService(t, repo, pub, m)
	petType := "dog"
	req := validBooking()
	req.PetType = &petType

	dto, err := svc.SubmitBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "appt-42", dto.ID)
	assert.Equal(t, "Furry Friends Animal Hospital", dto.ClinicName)
	assert.Equal(t, "2026-10-15", dto.Date.String())
	assert.Equal(t, testNow, dto.CreatedAt)
	assert.Equal(t, "dog", dto.PetType.OrElse(""))
	assert.Equal(t, []string{"success"}, m.bookings)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestSubmitBooking_EmptyEmailWritesNothing(t *testing.T) {
	repo := &mockAppointmentRepo{}
	pub := &mockPublisher{}
	m := &mockMetrics{}
	svc := newVeterinaryService(t, repo, pub, m)

	req := validBooking()
	req.Email = ""
	_, err := svc.SubmitBooking(context.Background(), req)

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindValidation, de.Kind)
	assert.Equal(t, "email", de.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{"validation_error"}, m.bookings)
}

func TestSubmitBooking_FieldOrder(t *testing.T) {
	svc := newVeterinaryService(t, &mockAppointmentRepo{}, nil, nil)

	tests := []struct {
		name   string
		mutate func(*BookAppointmentRequest)
		field  string
	}{
		{"everything missing reports name", func(r *BookAppointmentRequest) { *r = BookAppointmentRequest{ClinicID: "2"} }, "name"},
		{"missing date", func(r *BookAppointmentRequest) { r.Date = "" }, "date"},
		{"malformed date", func(r *BookAppointmentRequest) { r.Date = "tomorrow" }, "date"},
		{"malformed date after missing name", func(r *BookAppointmentRequest) { r.Date = "tomorrow"; r.Name = "" }, "name"},
		{"missing slot", func(r *BookAppointmentRequest) { r.TimeSlot = "" }, "time_slot"},
		{"slot not offered", func(r *BookAppointmentRequest) { r.TimeSlot = "6:00 AM" }, "time_slot"},
		{"missing pet name", func(r *BookAppointmentRequest) { r.PetName = "" }, "pet_name"},
		{"missing reason", func(r *BookAppointmentRequest) { r.Reason = " " }, "reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBooking()
			tt.mutate(&req)
			_, err := svc.SubmitBooking(context.Background(), req)
			var de *domain.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestSubmitBooking_UnknownClinic(t *testing.T) {
	svc := newVeterinaryService(t, &mockAppointmentRepo{}, nil, nil)
	req := validBooking()
	req.ClinicID = "99"
	_, err := svc.SubmitBooking(context.Background(), req)
	assert.True(t, domain.IsNotFound(err))
}

func TestSubmitBooking_StoreFailure(t *testing.T) {
	repo := &mockAppointmentRepo{}
	pub := &mockPublisher{}
	m := &mockMetrics{}
	storeErr := domain.NewCollaboratorError("document store", errors.New("connection refused"))
	repo.On("Create", mock.Anything, mock.Anything).Return("", storeErr)

	svc := newVeterinaryService(t, repo, pub, m)
	_, err := svc.SubmitBooking(context.Background(), validBooking())

	assert.True(t, domain.IsCollaborator(err))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{"store_error"}, m.bookings)
}

func TestSubmitBooking_PublishFailureIsNotFatal(t *testing.T) {
	repo := &mockAppointmentRepo{}
	pub := &mockPublisher{}
	repo.On("Create", mock.Anything, mock.Anything).Return("appt-1", nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := newVeterinaryService(t, repo, pub, nil)
	dto, err := svc.SubmitBooking(context.Background(), validBooking())
	require.NoError(t, err)
	assert.Equal(t, "appt-1", dto.ID)
}

func TestSubmitBooking_SameSlotTwice(t *testing.T) {
	repo := &mockAppointmentRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return("appt", nil).Twice()

	svc := newVeterinaryService(t, repo, nil, nil)
	for i := 0; i < 2; i++ {
		_, err := svc.SubmitBooking(context.Background(), validBooking())
		require.NoError(t, err)
	}
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestListAppointments(t *testing.T) {
	repo := &mockAppointmentRepo{}
	appt := veterinary.ReconstructAppointment("a1", "Sam", "sam@example.com", "2", "Furry Friends Animal Hospital",
		veterinary.DateOf(testNow), "8:00 AM", "Biscuit", domain.None[string](), "checkup", testNow)
	repo.On("List", mock.Anything).Return([]*veterinary.Appointment{appt}, nil)

	svc := newVeterinaryService(t, repo, nil, nil)
	list, err := svc.ListAppointments(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ID)
	assert.Len(t, svc.ListClinics(), 3)
}
