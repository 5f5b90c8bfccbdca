package veterinary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

var testNow = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

func offset(n int) *int { return &n }

func testTemplates() TemplateSet {
	return TemplateSet{
		"1": {ClinicID: "1", Entries: []TemplateEntry{
			{OffsetDays: offset(0), Times: []string{"9:00 AM", "11:30 AM", "2:00 PM"}},
			{OffsetDays: offset(1), Times: []string{"10:00 AM", "1:00 PM", "4:30 PM"}},
		}},
		"2": {ClinicID: "2", Entries: []TemplateEntry{
			{OffsetDays: offset(0), Times: []string{"8:00 AM", "10:30 AM", "3:00 PM", "5:30 PM"}},
			{OffsetDays: offset(1), Times: []string{"9:30 AM", "11:00 AM", "2:30 PM"}},
			{OffsetDays: offset(2), Times: []string{"8:00 AM", "10:00 AM", "1:30 PM", "4:00 PM"}},
		}},
		"3": {ClinicID: "3", Entries: []TemplateEntry{
			{Date: DateOf(testNow), Times: []string{}},
			{Date: CalendarDate{Year: 2026, Month: time.December, Day: 24}, Times: []string{"5:00 PM", "7:30 AM"}},
		}},
	}
}

func testResolver() *Resolver {
	return NewResolver(testTemplates(), FixedClock{At: testNow})
}

func TestSlotsFor_ClinicTwoToday(t *testing.T) {
	r := testResolver()

	assert.Equal(t, []string{"8:00 AM", "10:30 AM", "3:00 PM", "5:30 PM"}, r.SlotsFor("2", testNow))

	got := r.SlotsFor("2", testNow.AddDate(0, 0, 10))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSlotsFor_IgnoresTimeOfDay(t *testing.T) {
	r := testResolver()
	morning := time.Date(2026, 10, 16, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 10, 16, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, r.SlotsFor("1", morning), r.SlotsFor("1", night))
	assert.Equal(t, []string{"10:00 AM", "1:00 PM", "4:30 PM"}, r.SlotsFor("1", night))
}

func TestSlotsFor_UsesDateLocation(t *testing.T) {
	r := testResolver()
	// 2026-10-16 01:00 in UTC+10 is still the 16th on the requester's calendar.
	loc := time.FixedZone("AEST", 10*60*60)
	local := time.Date(2026, 10, 16, 1, 0, 0, 0, loc)

	assert.Equal(t, []string{"10:00 AM", "1:00 PM", "4:30 PM"}, r.SlotsFor("1", local))
}

func TestLookup_States(t *testing.T) {
	r := testResolver()
	today := DateOf(testNow)

	assert.Equal(t, SlotsAvailable, r.Lookup("2", today).State)
	assert.Equal(t, SlotsNoneAvailable, r.Lookup("2", today.AddDays(10)).State)
	assert.Equal(t, SlotsNoneAvailable, r.Lookup("3", today).State, "an entry with no times offers nothing")
	assert.Equal(t, SlotsNoneAvailable, r.Lookup("unknown", today).State)
	assert.Empty(t, r.Lookup("unknown", today).Slots)
}

func TestLookup_PreservesStoredOrder(t *testing.T) {
	r := testResolver()
	got := r.Lookup("3", CalendarDate{Year: 2026, Month: time.December, Day: 24})
	assert.Equal(t, []string{"5:00 PM", "7:30 AM"}, got.Slots)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	r := testResolver()
	first := r.SlotsFor("2", testNow)
	first[0] = "mutated"
	assert.Equal(t, "8:00 AM", r.SlotsFor("2", testNow)[0])
}

func TestNewClinicAvailability_RejectsDuplicateDates(t *testing.T) {
	day := CalendarDate{Year: 2026, Month: time.October, Day: 15}
	_, err := NewClinicAvailability("1", []DaySlots{
		{Date: day, Times: []string{"9:00 AM"}},
		{Date: day, Times: []string{"10:00 AM"}},
	})
	assert.Error(t, err)

}

func TestTemplate_RejectsMixedOffsetAndDate(t *testing.T) {
	mixed := AvailabilityTemplate{ClinicID: "1", Entries: []TemplateEntry{
		{OffsetDays: offset(0), Times: []string{"9:00 AM"}},
		{Date: CalendarDate{Year: 2026, Month: time.October, Day: 16}, Times: []string{"1:00 PM"}},
	}}
	require.Error(t, mixed.Validate())

	// Rejected on every day, not only the day the offset lands on the date.
	for _, today := range []CalendarDate{DateOf(testNow), DateOf(testNow).AddDays(1)} {
		_, err := mixed.Materialize(today)
		assert.Error(t, err, today.String())
	}
}

func TestTemplate_RequiresExactlyOneDateForm(t *testing.T) {
	today := DateOf(testNow)
	_, err := AvailabilityTemplate{ClinicID: "1", Entries: []TemplateEntry{{}}}.Materialize(today)
	assert.Error(t, err)

	_, err = AvailabilityTemplate{ClinicID: "1", Entries: []TemplateEntry{{OffsetDays: offset(1), Date: today}}}.Materialize(today)
	assert.Error(t, err)
}

func TestCalendarDate(t *testing.T) {
	d, err := ParseDate("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2027-01-01", d.AddDays(1).String())

	_, err = ParseDate("31/12/2026")
	assert.Error(t, err)

	var parsed CalendarDate
	require.NoError(t, parsed.UnmarshalText([]byte("2026-10-15")))
	assert.Equal(t, DateOf(testNow), parsed)
}

// --- Booking ---

type recordingRepo struct {
	created []*Appointment
	err     error
}

func (r *recordingRepo) Create(_ context.Context, appt *Appointment) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.created = append(r.created, appt)
	return "appt-1", nil
}

func (r *recordingRepo) List(context.Context) ([]*Appointment, error) { return r.created, nil }

var clinicTwo = Clinic{ID: "2", Name: "Furry Friends Animal Hospital"}

func validDetails() RequesterDetails {
	return RequesterDetails{
		Name:    "Sam",
		Email:   "sam@example.com",
		PetName: "Biscuit",
		PetType: domain.Some("dog"),
		Reason:  "Annual vaccination",
	}
}

func TestBookingFields_ValidateOrder(t *testing.T) {
	full := BookingFields{
		RequesterName: "Sam", RequesterEmail: "sam@example.com", Date: DateOf(testNow),
		TimeSlot: "8:00 AM", PetName: "Biscuit", Reason: "checkup",
	}
	require.NoError(t, full.Validate())

	cases := map[string]func(f *BookingFields){
		"name":      func(f *BookingFields) { f.RequesterName = " " },
		"email":     func(f *BookingFields) { f.RequesterEmail = "" },
		"date":      func(f *BookingFields) { f.Date = CalendarDate{} },
		"time_slot": func(f *BookingFields) { f.TimeSlot = "" },
		"pet_name":  func(f *BookingFields) { f.PetName = "" },
		"reason":    func(f *BookingFields) { f.Reason = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			f := full
			mutate(&f)
			var de *domain.DomainError
			require.ErrorAs(t, f.Validate(), &de)
			assert.Equal(t, domain.KindValidation, de.Kind)
			assert.Equal(t, field, de.Field)
		})
	}
}

func TestNewAppointment_OptionalPetType(t *testing.T) {
	fields := BookingFields{
		RequesterName: "Sam", RequesterEmail: "sam@example.com", Date: DateOf(testNow),
		TimeSlot: "8:00 AM", PetName: "Biscuit", PetType: domain.Some("  "), Reason: "checkup",
	}
	appt, err := NewAppointment(clinicTwo, fields, testNow)
	require.NoError(t, err)
	assert.False(t, appt.PetType().IsPresent())
	assert.Equal(t, "Furry Friends Animal Hospital", appt.ClinicName())
	assert.Equal(t, testNow, appt.CreatedAt())
}

func TestDialog_HappyPath(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDialog(testResolver(), repo, FixedClock{At: testNow})
	require.Equal(t, DialogClosed, d.State())

	require.NoError(t, d.Open(clinicTwo))
	assert.Equal(t, DialogClinicSelected, d.State())

	lookup, err := d.SelectDate(DateOf(testNow))
	require.NoError(t, err)
	assert.Equal(t, SlotsAvailable, lookup.State)
	assert.Equal(t, DialogDateSelected, d.State())

	require.NoError(t, d.SelectSlot("3:00 PM"))
	assert.Equal(t, DialogSlotSelected, d.State())

	appt, err := d.Submit(context.Background(), validDetails())
	require.NoError(t, err)
	assert.Equal(t, "appt-1", appt.ID())
	assert.Equal(t, "3:00 PM", appt.TimeSlot())
	assert.Equal(t, DialogClosed, d.State())
	assert.Len(t, repo.created, 1)
}

func TestDialog_NewDateResetsSlot(t *testing.T) {
	d := NewDialog(testResolver(), &recordingRepo{}, FixedClock{At: testNow})
	require.NoError(t, d.Open(clinicTwo))
	_, err := d.SelectDate(DateOf(testNow))
	require.NoError(t, err)
	require.NoError(t, d.SelectSlot("8:00 AM"))

	lookup, err := d.SelectDate(DateOf(testNow).AddDays(10))
	require.NoError(t, err)
	assert.Equal(t, SlotsNoneAvailable, lookup.State)
	assert.Equal(t, "", d.SelectedSlot())
	assert.Equal(t, DialogDateSelected, d.State())
}

func TestDialog_RejectsUnofferedSlot(t *testing.T) {
	d := NewDialog(testResolver(), &recordingRepo{}, FixedClock{At: testNow})
	require.NoError(t, d.Open(clinicTwo))
	_, err := d.SelectDate(DateOf(testNow))
	require.NoError(t, err)

	err = d.SelectSlot("6:00 AM")
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, DialogDateSelected, d.State())
}

func TestDialog_EmptyEmailWritesNothing(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDialog(testResolver(), repo, FixedClock{At: testNow})
	require.NoError(t, d.Open(clinicTwo))
	_, err := d.SelectDate(DateOf(testNow))
	require.NoError(t, err)
	require.NoError(t, d.SelectSlot("8:00 AM"))

	details := validDetails()
	details.Email = ""
	_, err = d.Submit(context.Background(), details)

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "email", de.Field)
	assert.Empty(t, repo.created)
	assert.Equal(t, DialogSlotSelected, d.State())
}

func TestDialog_SubmitWithoutSlotIsValidationError(t *testing.T) {
	d := NewDialog(testResolver(), &recordingRepo{}, FixedClock{At: testNow})
	require.NoError(t, d.Open(clinicTwo))

	_, err := d.Submit(context.Background(), validDetails())
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "date", de.Field)
}

func TestDialog_StoreFailureReturnsToClinicSelected(t *testing.T) {
	storeErr := domain.NewCollaboratorError("document store", errors.New("unavailable"))
	d := NewDialog(testResolver(), &recordingRepo{err: storeErr}, FixedClock{At: testNow})
	require.NoError(t, d.Open(clinicTwo))
	_, err := d.SelectDate(DateOf(testNow))
	require.NoError(t, err)
	require.NoError(t, d.SelectSlot("8:00 AM"))

	_, err = d.Submit(context.Background(), validDetails())
	assert.True(t, domain.IsCollaborator(err))
	assert.Equal(t, DialogClinicSelected, d.State())
	assert.Equal(t, "", d.SelectedSlot())
}

func TestDialog_CloseDiscardsInput(t *testing.T) {
	d := NewDialog(testResolver(), &recordingRepo{}, FixedClock{At: testNow})
	require.NoError(t, d.Open(clinicTwo))
	_, err := d.SelectDate(DateOf(testNow))
	require.NoError(t, err)
	require.NoError(t, d.SelectSlot("8:00 AM"))

	d.Close()
	assert.Equal(t, DialogClosed, d.State())
	assert.Empty(t, d.Slots().Slots)

	_, err = d.SelectDate(DateOf(testNow))
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
}

func TestDialog_DoubleBookingIsNotPrevented(t *testing.T) {
	repo := &recordingRepo{}
	for i := 0; i < 2; i++ {
		d := NewDialog(testResolver(), repo, FixedClock{At: testNow})
		require.NoError(t, d.Open(clinicTwo))
		_, err := d.SelectDate(DateOf(testNow))
		require.NoError(t, err)
		require.NoError(t, d.SelectSlot("8:00 AM"))
		_, err = d.Submit(context.Background(), validDetails())
		require.NoError(t, err)
	}
	assert.Len(t, repo.created, 2)
}

func TestDialogState_Transitions(t *testing.T) {
	assert.True(t, DialogClosed.CanTransitionTo(DialogClinicSelected))
	assert.False(t, DialogClosed.CanTransitionTo(DialogSubmitting))
	assert.True(t, DialogSlotSelected.CanTransitionTo(DialogDateSelected))
	assert.True(t, DialogSubmitting.CanTransitionTo(DialogClinicSelected))
	assert.False(t, DialogClinicSelected.CanTransitionTo(DialogSlotSelected))
}
