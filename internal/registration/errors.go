package registration

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when no live session has the given ID.
	ErrSessionNotFound = errors.New("registration session not found")
	// ErrNotEditing is returned when an edit or submit arrives after the
	// form has left the editing state.
	ErrNotEditing = errors.New("form is no longer editable")
	// ErrNotCompleted is returned when the record is requested before the
	// form has reached the success state.
	ErrNotCompleted = errors.New("registration not completed")
	// ErrUnknownField is returned for a field ID the form does not declare.
	ErrUnknownField = errors.New("unknown form field")
	// ErrUnknownSlot is returned for a vehicle slot the form does not declare.
	ErrUnknownSlot = errors.New("unknown vehicle slot")
	// ErrInvalidGender is returned when the gender value is not one of the
	// three offered choices.
	ErrInvalidGender = errors.New("invalid gender value")
	// ErrNoCustomType rejects a custom vehicle type on any slot but "others".
	ErrNoCustomType = errors.New("custom vehicle type is only valid for the others slot")
)

// ViolationKind enumerates the user-input failures submit can surface.
type ViolationKind string

const (
	MissingRequiredField ViolationKind = "MissingRequiredField"
	NoVehicleSelected    ViolationKind = "NoVehicleSelected"
	InvalidPhoneFormat   ViolationKind = "InvalidPhoneFormat"
)

// Violation is a single validation failure. Submit surfaces at most one per
// attempt; every violation is recoverable by editing and resubmitting.
type Violation struct {
	Kind  ViolationKind
	Field Field // set for MissingRequiredField only
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Message())
}

// Message is the description shown to the user.
func (v *Violation) Message() string {
	switch v.Kind {
	case MissingRequiredField:
		return fmt.Sprintf("Please fill in the %s field.", v.Field.Label())
	case NoVehicleSelected:
		return "Please select at least one vehicle type."
	case InvalidPhoneFormat:
		return "Please enter a valid 10-digit phone number."
	}
	return string(v.Kind)
}
