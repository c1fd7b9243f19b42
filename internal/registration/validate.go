package registration

import "strings"

// mandatoryFields is checked in this order; the first empty one is the one
// reported. Email, experience and route preference are optional.
var mandatoryFields = []Field{
	FieldOwnerName,
	FieldPhone,
	FieldAge,
	FieldCity,
	FieldState,
	FieldGender,
}

// Validate runs the submission rules in order and returns the first
// violation, or nil if the draft can produce a record. The declared age
// bounds (18-100) are advisory only and deliberately not checked here.
func (d *Draft) Validate() *Violation {
	for _, f := range mandatoryFields {
		if strings.TrimSpace(d.fieldValue(f)) == "" {
			return &Violation{Kind: MissingRequiredField, Field: f}
		}
	}
	if !d.Vehicles.AnySelected() {
		return &Violation{Kind: NoVehicleSelected}
	}
	if len(normalizePhone(d.Phone)) != 10 {
		return &Violation{Kind: InvalidPhoneFormat}
	}
	return nil
}

// normalizePhone strips every non-digit character and drops an Indian
// country prefix or trunk zero, so "98765-43210", "+91 9876543210" and
// "09876543210" all normalize to the same 10 digits.
func normalizePhone(s string) string {
	d := digitsOnly(s)
	if len(d) == 12 && strings.HasPrefix(d, "91") {
		d = d[2:]
	}
	if len(d) == 11 && strings.HasPrefix(d, "0") {
		d = d[1:]
	}
	return d
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
