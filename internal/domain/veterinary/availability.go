package veterinary

import (
	"fmt"
	"time"
)

// TemplateEntry declares the slots of one day, either at a fixed date or at an
// offset from the day the table is materialized. Exactly one must be set.
type TemplateEntry struct {
	OffsetDays *int
	Date       CalendarDate
	Times      []string
}

// AvailabilityTemplate is the declared form of a clinic's availability table.
type AvailabilityTemplate struct {
	ClinicID string
	Entries  []TemplateEntry
}

// Validate checks that every entry sets exactly one of offset and date, and
// that the table is either all relative or all fixed. A mixed table can
// collide on a single day only, which no up-front check would see.
func (t AvailabilityTemplate) Validate() error {
	var relative, fixed int
	for i, e := range t.Entries {
		switch {
		case e.OffsetDays != nil && !e.Date.IsZero():
			return fmt.Errorf("clinic %s: entry %d sets both offset and date", t.ClinicID, i)
		case e.OffsetDays != nil:
			relative++
		case !e.Date.IsZero():
			fixed++
		default:
			return fmt.Errorf("clinic %s: entry %d sets neither offset nor date", t.ClinicID, i)
		}
	}
	if relative > 0 && fixed > 0 {
		return fmt.Errorf("clinic %s: offset and date entries cannot be mixed", t.ClinicID)
	}
	return nil
}

// Materialize resolves relative entries against today and validates the result.
func (t AvailabilityTemplate) Materialize(today CalendarDate) (*ClinicAvailability, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	days := make([]DaySlots, 0, len(t.Entries))
	for _, e := range t.Entries {
		date := e.Date
		if e.OffsetDays != nil {
			date = today.AddDays(*e.OffsetDays)
		}
		days = append(days, DaySlots{Date: date, Times: e.Times})
	}
	return NewClinicAvailability(t.ClinicID, days)
}

// AvailabilityProvider returns the availability table of a clinic as of today.
type AvailabilityProvider interface {
	Availability(clinicID string, today CalendarDate) (*ClinicAvailability, bool)
}

// SlotState distinguishes an offered day from a day with nothing to book.
type SlotState string

const (
	SlotsAvailable     SlotState = "available"
	SlotsNoneAvailable SlotState = "none_available"
)

// SlotLookup is the result of an availability lookup.
type SlotLookup struct {
	ClinicID string       `json:"clinic_id"`
	Date     CalendarDate `json:"date"`
	Slots    []string     `json:"slots"`
	State    SlotState    `json:"state"`
}

// Resolver answers "which slots can be booked at this clinic on this day".
type Resolver struct {
	provider AvailabilityProvider
	clock    Clock
}

// NewResolver creates a Resolver.
func NewResolver(provider AvailabilityProvider, clock Clock) *Resolver {
	return &Resolver{provider: provider, clock: clock}
}

// SlotsFor returns the slot labels stored for the calendar day of date.
// Time-of-day is ignored. Unknown clinics and unlisted days yield an empty
// slice.
func (r *Resolver) SlotsFor(clinicID string, date time.Time) []string {
	return r.Lookup(clinicID, DateOf(date)).Slots
}

// Lookup returns the slots for date together with an explicit state.
func (r *Resolver) Lookup(clinicID string, date CalendarDate) SlotLookup {
	result := SlotLookup{ClinicID: clinicID, Date: date, Slots: []string{}, State: SlotsNoneAvailable}

	table, ok := r.provider.Availability(clinicID, DateOf(r.clock.Now()))
	if !ok {
		return result
	}
	result.Slots = table.SlotsOn(date)
	if len(result.Slots) > 0 {
		result.State = SlotsAvailable
	}
	return result
}

// TemplateSet materializes declared templates on every call.
type TemplateSet map[string]AvailabilityTemplate

// Availability implements AvailabilityProvider. Templates that fail to
// materialize are treated as absent.
func (s TemplateSet) Availability(clinicID string, today CalendarDate) (*ClinicAvailability, bool) {
	tmpl, ok := s[clinicID]
	if !ok {
		return nil, false
	}
	table, err := tmpl.Materialize(today)
	if err != nil {
		return nil, false
	}
	return table, true
}
