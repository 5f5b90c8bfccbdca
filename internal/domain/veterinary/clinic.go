package veterinary

import (
	"fmt"
	"strings"
)

// Clinic is a partner veterinary clinic offering appointments.
type Clinic struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Phone    string   `json:"phone"`
	Hours    string   `json:"hours"`
	Services []string `json:"services"`
	ImageURL string   `json:"image_url,omitempty"`
}

// Validate checks the fields a booking denormalizes.
func (c Clinic) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("clinic id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("clinic %s has no name", c.ID)
	}
	return nil
}

// DaySlots is one entry of a clinic availability table.
type DaySlots struct {
	Date  CalendarDate
	Times []string
}

// ClinicAvailability is a clinic's ordered table of bookable slots per day.
// It holds at most one entry per calendar date.
type ClinicAvailability struct {
	clinicID string
	entries  []DaySlots
}

// NewClinicAvailability validates the table. Entries keep their given order
// and their slot labels keep theirs.
func NewClinicAvailability(clinicID string, entries []DaySlots) (*ClinicAvailability, error) {
	if strings.TrimSpace(clinicID) == "" {
		return nil, fmt.Errorf("clinic id is required")
	}
	seen := make(map[CalendarDate]struct{}, len(entries))
	copied := make([]DaySlots, len(entries))
	for i, e := range entries {
		if e.Date.IsZero() {
			return nil, fmt.Errorf("clinic %s: entry %d has no date", clinicID, i)
		}
		if _, dup := seen[e.Date]; dup {
			return nil, fmt.Errorf("clinic %s: duplicate availability entry for %s", clinicID, e.Date)
		}
		seen[e.Date] = struct{}{}
		times := make([]string, len(e.Times))
		copy(times, e.Times)
		copied[i] = DaySlots{Date: e.Date, Times: times}
	}
	return &ClinicAvailability{clinicID: clinicID, entries: copied}, nil
}

// ClinicID returns the owning clinic.
func (a *ClinicAvailability) ClinicID() string { return a.clinicID }

// SlotsOn returns the labels stored for date in stored order, or an empty
// slice when the table has no entry for that day.
func (a *ClinicAvailability) SlotsOn(date CalendarDate) []string {
	for _, e := range a.entries {
		if e.Date == date {
			out := make([]string, len(e.Times))
			copy(out, e.Times)
			return out
		}
	}
	return []string{}
}
