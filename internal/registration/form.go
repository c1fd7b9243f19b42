package registration

import (
	"sync"
	"time"
)

// State is the view-level state of one form session.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

// Form owns one registration draft and drives the editing → submitting →
// success transitions for a single session. Every event handler serializes
// on the form's mutex, mirroring single-threaded UI semantics.
type Form struct {
	ID string

	mu     sync.Mutex
	state  State
	draft  Draft
	record *Record

	submitDelay time.Duration
	emit        func(Record) // called exactly once per successful submission
	onSuccess   func()       // called when the simulated round-trip completes
}

// NewForm creates a session in the editing state. emit and onSuccess may be
// nil.
func NewForm(id string, submitDelay time.Duration, emit func(Record), onSuccess func()) *Form {
	return &Form{
		ID:          id,
		state:       StateEditing,
		submitDelay: submitDelay,
		emit:        emit,
		onSuccess:   onSuccess,
	}
}

// SetField replaces one scalar draft field. No validation happens here.
func (f *Form) SetField(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	return f.draft.setField(field, value)
}

// SetGender sets gender to exactly one of the three choices; a later call
// replaces the earlier selection.
func (f *Form) SetGender(g Gender) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		f.draft.Gender = g
		return nil
	}
	return ErrInvalidGender
}

// ToggleVehicle flips the selected flag of one slot; other slots and the
// slot's own fields are untouched.
func (f *Form) ToggleVehicle(s Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	slot := f.draft.Vehicles.slot(s)
	if slot == nil {
		return ErrUnknownSlot
	}
	slot.Selected = !slot.Selected
	return nil
}

// SetVehicleNumber updates the registration number of one slot without
// implicitly selecting it.
func (f *Form) SetVehicleNumber(s Slot, number string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	slot := f.draft.Vehicles.slot(s)
	if slot == nil {
		return ErrUnknownSlot
	}
	slot.Number = number
	return nil
}

// SetVehicleCustomType updates the free-text vehicle type, valid only for
// the "others" slot.
func (f *Form) SetVehicleCustomType(s Slot, customType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	slot := f.draft.Vehicles.slot(s)
	if slot == nil {
		return ErrUnknownSlot
	}
	if s != SlotOthers {
		return ErrNoCustomType
	}
	slot.CustomType = customType
	return nil
}

// AttachPicture decodes an image file into a data URL asynchronously and
// stores it as the preview. A later selection replaces the former; a decode
// failure leaves the prior preview unchanged. done, if non-nil, receives the
// decode outcome once the operation completes.
func (f *Form) AttachPicture(data []byte, done func(dataURL string, err error)) {
	go func() {
		dataURL, err := encodeDataURL(data)
		if err == nil {
			f.mu.Lock()
			if f.state == StateEditing {
				f.draft.ProfilePicture = dataURL
			}
			f.mu.Unlock()
		}
		if done != nil {
			done(dataURL, err)
		}
	}()
}

// Submit validates the draft. A violation is surfaced without any state
// transition. On success the form enters the submitting state, the record is
// built and emitted once, and after the simulated round-trip delay the form
// reaches its terminal success state. The submitting state guards against a
// second submission.
func (f *Form) Submit() (*Violation, error) {
	f.mu.Lock()
	if f.state != StateEditing {
		f.mu.Unlock()
		return nil, ErrNotEditing
	}
	if v := f.draft.Validate(); v != nil {
		f.mu.Unlock()
		return v, nil
	}
	f.state = StateSubmitting
	rec := newRecord(&f.draft, time.Now())
	f.record = &rec
	f.mu.Unlock()

	if f.emit != nil {
		f.emit(rec)
	}
	time.AfterFunc(f.submitDelay, func() {
		f.mu.Lock()
		f.state = StateSuccess
		f.mu.Unlock()
		if f.onSuccess != nil {
			f.onSuccess()
		}
	})
	return nil, nil
}

// State returns the current view state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Snapshot returns a copy of the draft alongside the current state.
func (f *Form) Snapshot() (Draft, State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft, f.state
}

// Record returns the emitted record once the form has reached success.
func (f *Form) Record() (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSuccess || f.record == nil {
		return Record{}, ErrNotCompleted
	}
	return *f.record, nil
}
