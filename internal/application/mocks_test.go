package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/PawsProtect/service-welfare/internal/domain/adoption"
	"github.com/PawsProtect/service-welfare/internal/domain/veterinary"
	"github.com/PawsProtect/service-welfare/internal/platform/kafka"
	"github.com/PawsProtect/service-welfare/internal/storage"
)

var testNow = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *veterinary.Appointment) (string, error) {
	args := m.Called(ctx, appt)
	return args.String(0), args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context) ([]*veterinary.Appointment, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*veterinary.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) Create(ctx context.Context, req *adoption.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockRequestRepo) ListNewestFirst(ctx context.Context) ([]*adoption.Request, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*adoption.Request), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, topic, key string, event kafka.CloudEvent) error {
	return m.Called(ctx, topic, key, event).Error(0)
}

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, f storage.File, folder string) (string, error) {
	args := m.Called(ctx, f, folder)
	return args.String(0), args.Error(1)
}

func (m *mockUploader) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type mockMetrics struct {
	bookings []string
	reports  []string
}

func (m *mockMetrics) RecordBooking(_ string, outcome string) { m.bookings = append(m.bookings, outcome) }
func (m *mockMetrics) RecordReport(outcome string) { m.reports = append(m.reports, outcome) }
func (m *mockMetrics) RecordAdoptionRequest(string) {}
func (m *mockMetrics) RecordFilterResult(int) {}

func eventOfType(eventType string) any {
	return mock.MatchedBy(func(ev kafka.CloudEvent) bool { return ev.Type == eventType })
}
