package registration

// Field identifies one scalar input of the registration form.
type Field string

const (
	FieldOwnerName  Field = "ownerName"
	FieldPhone      Field = "phoneNumber"
	FieldAge        Field = "age"
	FieldCity       Field = "city"
	FieldState      Field = "state"
	FieldGender     Field = "gender"
	FieldEmail      Field = "email"
	FieldExperience Field = "drivingExperience"
	FieldRoutePref  Field = "routePreference"
)

// Label returns the human-readable name used in validation messages.
func (f Field) Label() string {
	switch f {
	case FieldOwnerName:
		return "Owner Name"
	case FieldPhone:
		return "Phone Number"
	case FieldAge:
		return "Age"
	case FieldCity:
		return "City"
	case FieldState:
		return "State"
	case FieldGender:
		return "Gender"
	case FieldEmail:
		return "Email"
	case FieldExperience:
		return "Driving Experience"
	case FieldRoutePref:
		return "Route Preference"
	}
	return string(f)
}

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Slot identifies one of the four fixed vehicle slots.
type Slot string

const (
	SlotBike   Slot = "bike"   // two-wheeler
	SlotCar    Slot = "car"    // four-wheeler
	SlotHeavy  Slot = "heavy"  // heavy vehicle
	SlotOthers Slot = "others" // free-text vehicle type
)

// SlotOrder is the declaration order of the vehicle slots. Records list
// vehicles in this order regardless of the order the user selected them in.
var SlotOrder = [4]Slot{SlotBike, SlotCar, SlotHeavy, SlotOthers}

// StateOptions is the fixed list of region names offered by the form,
// plus "Other" as the catch-all.
var StateOptions = []string{
	"Andhra Pradesh",
	"Delhi",
	"Gujarat",
	"Karnataka",
	"Kerala",
	"Maharashtra",
	"Punjab",
	"Rajasthan",
	"Tamil Nadu",
	"Telangana",
	"Uttar Pradesh",
	"West Bengal",
	"Other",
}

// ExperienceOptions are the optional driving-experience buckets, in years.
var ExperienceOptions = []string{"0-1", "1-3", "3-5", "5-10", "10+"}

// RouteOptions are the optional route preferences.
var RouteOptions = []string{"highways", "city-roads", "mixed"}

// VehicleSlot is the per-slot working state. CustomType is meaningful only
// for SlotOthers.
type VehicleSlot struct {
	Selected   bool   `json:"selected"`
	Number     string `json:"registrationNumber"`
	CustomType string `json:"customType,omitempty"`
}

// Vehicles holds the four fixed slots as named fields so that the
// "others"-only custom type stays statically distinguishable.
type Vehicles struct {
	Bike   VehicleSlot `json:"bike"`
	Car    VehicleSlot `json:"car"`
	Heavy  VehicleSlot `json:"heavy"`
	Others VehicleSlot `json:"others"`
}

func (v *Vehicles) slot(s Slot) *VehicleSlot {
	switch s {
	case SlotBike:
		return &v.Bike
	case SlotCar:
		return &v.Car
	case SlotHeavy:
		return &v.Heavy
	case SlotOthers:
		return &v.Others
	}
	return nil
}

// AnySelected reports whether at least one slot is selected.
func (v *Vehicles) AnySelected() bool {
	for _, s := range SlotOrder {
		if v.slot(s).Selected {
			return true
		}
	}
	return false
}

// Draft is the mutable working state of one form-filling session.
type Draft struct {
	OwnerName         string   `json:"ownerName"`
	Phone             string   `json:"phoneNumber"`
	Age               string   `json:"age"`
	Gender            Gender   `json:"gender"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	Email             string   `json:"email,omitempty"`
	DrivingExperience string   `json:"drivingExperience,omitempty"`
	RoutePreference   string   `json:"routePreference,omitempty"`
	Vehicles          Vehicles `json:"vehicles"`
	ProfilePicture    string   `json:"profilePicture,omitempty"`
}

// setField replaces one scalar field of the draft. Gender has its own
// exclusive-choice operation and is not settable here.
func (d *Draft) setField(f Field, value string) error {
	switch f {
	case FieldOwnerName:
		d.OwnerName = value
	case FieldPhone:
		d.Phone = value
	case FieldAge:
		d.Age = value
	case FieldCity:
		d.City = value
	case FieldState:
		d.State = value
	case FieldEmail:
		d.Email = value
	case FieldExperience:
		d.DrivingExperience = value
	case FieldRoutePref:
		d.RoutePreference = value
	default:
		return ErrUnknownField
	}
	return nil
}

// fieldValue reads a scalar field for the mandatory-field check.
func (d *Draft) fieldValue(f Field) string {
	switch f {
	case FieldOwnerName:
		return d.OwnerName
	case FieldPhone:
		return d.Phone
	case FieldAge:
		return d.Age
	case FieldCity:
		return d.City
	case FieldState:
		return d.State
	case FieldGender:
		return string(d.Gender)
	case FieldEmail:
		return d.Email
	case FieldExperience:
		return d.DrivingExperience
	case FieldRoutePref:
		return d.RoutePreference
	}
	return ""
}
