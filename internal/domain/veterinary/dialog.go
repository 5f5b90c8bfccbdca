package veterinary

import (
	"context"
	"fmt"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// DialogState is the step of the appointment booking dialog.
type DialogState string

const (
	DialogClosed         DialogState = "closed"
	DialogClinicSelected DialogState = "clinic_selected"
	DialogDateSelected   DialogState = "date_selected"
	DialogSlotSelected   DialogState = "slot_selected"
	DialogSubmitting     DialogState = "submitting"
)

// dialogTransitions defines the booking dialog state machine. Closing is
// allowed from every state and is handled separately.
var dialogTransitions = map[DialogState][]DialogState{
	DialogClosed:         {DialogClinicSelected},
	DialogClinicSelected: {DialogDateSelected},
	DialogDateSelected:   {DialogDateSelected, DialogSlotSelected},
	DialogSlotSelected:   {DialogDateSelected, DialogSlotSelected, DialogSubmitting},
	DialogSubmitting:     {DialogClosed, DialogClinicSelected},
}

// CanTransitionTo returns true if a transition from s to target is allowed.
func (s DialogState) CanTransitionTo(target DialogState) bool {
	for _, t := range dialogTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// RequesterDetails are the free-text fields of the dialog form.
type RequesterDetails struct {
	Name    string
	Email   string
	PetName string
	PetType domain.Optional[string]
	Reason  string
}

// Dialog drives one booking from clinic selection to submission. It is not
// safe for concurrent use; each user interaction owns its own Dialog.
type Dialog struct {
	resolver *Resolver
	repo     AppointmentRepository
	clock    Clock

	state  DialogState
	clinic Clinic
	lookup SlotLookup
	slot   string
}

// NewDialog creates a closed dialog.
func NewDialog(resolver *Resolver, repo AppointmentRepository, clock Clock) *Dialog {
	return &Dialog{resolver: resolver, repo: repo, clock: clock, state: DialogClosed}
}

// State returns the current step.
func (d *Dialog) State() DialogState { return d.state }

// Slots returns the slots offered for the selected date.
func (d *Dialog) Slots() SlotLookup { return d.lookup }

// SelectedSlot returns the chosen slot label, or "" when none is chosen.
func (d *Dialog) SelectedSlot() string { return d.slot }

// Open starts a booking for clinic, discarding any previous input.
func (d *Dialog) Open(clinic Clinic) error {
	d.Close()
	if err := d.transition(DialogClinicSelected); err != nil {
		return err
	}
	d.clinic = clinic
	return nil
}

// SelectDate looks up the slots for date and clears any chosen slot.
func (d *Dialog) SelectDate(date CalendarDate) (SlotLookup, error) {
	if date.IsZero() {
		return SlotLookup{}, domain.NewFieldValidationError("date", "an appointment date must be chosen")
	}
	if err := d.transition(DialogDateSelected); err != nil {
		return SlotLookup{}, err
	}
	d.slot = ""
	d.lookup = d.resolver.Lookup(d.clinic.ID, date)
	return d.lookup, nil
}

// SelectSlot chooses one of the offered slots.
func (d *Dialog) SelectSlot(slot string) error {
	if d.state != DialogDateSelected && d.state != DialogSlotSelected {
		return domain.NewInvalidStateError(string(d.state), string(DialogSlotSelected))
	}
	offered := false
	for _, s := range d.lookup.Slots {
		if s == slot {
			offered = true
			break
		}
	}
	if !offered {
		return domain.NewFieldValidationError("time_slot",
			fmt.Sprintf("%q is not offered on %s", slot, d.lookup.Date))
	}
	if err := d.transition(DialogSlotSelected); err != nil {
		return err
	}
	d.slot = slot
	return nil
}

// Submit validates the form and appends the booking. Validation failures
// leave the dialog where it was and write nothing. A store failure returns
// the dialog to clinic selection; success closes it.
func (d *Dialog) Submit(ctx context.Context, details RequesterDetails) (*Appointment, error) {
	fields := BookingFields{
		RequesterName:  details.Name,
		RequesterEmail: details.Email,
		Date:           d.lookup.Date,
		TimeSlot:       d.slot,
		PetName:        details.PetName,
		PetType:        details.PetType,
		Reason:         details.Reason,
	}
	if d.state == DialogClosed {
		return nil, domain.NewInvalidStateError(string(d.state), string(DialogSubmitting))
	}
	if d.state != DialogSlotSelected {
		// Surface the missing date or slot as a validation error, as the form does.
		if err := fields.Validate(); err != nil {
			return nil, err
		}
	}

	appt, err := NewAppointment(d.clinic, fields, d.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := d.transition(DialogSubmitting); err != nil {
		return nil, err
	}

	id, err := d.repo.Create(ctx, appt)
	if err != nil {
		d.state = DialogClinicSelected
		d.lookup = SlotLookup{}
		d.slot = ""
		return nil, err
	}
	appt.id = id

	d.Close()
	return appt, nil
}

// Close discards all in-progress input. An in-flight write is not aborted.
func (d *Dialog) Close() {
	d.state = DialogClosed
	d.clinic = Clinic{}
	d.lookup = SlotLookup{}
	d.slot = ""
}

func (d *Dialog) transition(target DialogState) error {
	if !d.state.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(d.state), string(target))
	}
	d.state = target
	return nil
}
