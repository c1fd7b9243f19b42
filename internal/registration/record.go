package registration

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VehicleRecord is one selected vehicle in the final record. CustomType is
// present only for the "others" slot.
type VehicleRecord struct {
	Type       Slot   `bson:"type" json:"type"`
	Number     string `bson:"number" json:"number"`
	CustomType string `bson:"customType,omitempty" json:"customType,omitempty"`
}

type PersonalInfo struct {
	Name              string `bson:"name" json:"name"`
	Phone             string `bson:"phone" json:"phone"`
	Age               int    `bson:"age" json:"age"`
	Gender            Gender `bson:"gender" json:"gender"`
	City              string `bson:"city" json:"city"`
	State             string `bson:"state" json:"state"`
	Email             string `bson:"email,omitempty" json:"email,omitempty"`
	DrivingExperience string `bson:"drivingExperience,omitempty" json:"drivingExperience,omitempty"`
	RoutePreference   string `bson:"routePreference,omitempty" json:"routePreference,omitempty"`
}

// Record is the immutable registration assembled from a valid draft at
// submission time.
type Record struct {
	RecordID       string          `bson:"recordID" json:"recordID"`
	PersonalInfo   PersonalInfo    `bson:"personalInfo" json:"personalInfo"`
	Vehicles       []VehicleRecord `bson:"vehicles" json:"vehicles"`
	ProfilePicture string          `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	RegisteredAt   time.Time       `bson:"registeredAt" json:"registeredAt"`
}

// newRecord builds the record from a draft that already passed Validate.
// Age is parsed without range enforcement; the 18-100 bounds are advisory.
func newRecord(d *Draft, now time.Time) Record {
	age, _ := strconv.Atoi(strings.TrimSpace(d.Age))

	vehicles := make([]VehicleRecord, 0, len(SlotOrder))
	for _, s := range SlotOrder {
		slot := d.Vehicles.slot(s)
		if !slot.Selected {
			continue
		}
		vr := VehicleRecord{Type: s, Number: slot.Number}
		if s == SlotOthers {
			vr.CustomType = slot.CustomType
		}
		vehicles = append(vehicles, vr)
	}

	return Record{
		RecordID: fmt.Sprintf("REG-%s", strings.ToUpper(uuid.New().String()[:8])),
		PersonalInfo: PersonalInfo{
			Name:              d.OwnerName,
			Phone:             normalizePhone(d.Phone),
			Age:               age,
			Gender:            d.Gender,
			City:              d.City,
			State:             d.State,
			Email:             d.Email,
			DrivingExperience: d.DrivingExperience,
			RoutePreference:   d.RoutePreference,
		},
		Vehicles:       vehicles,
		ProfilePicture: d.ProfilePicture,
		RegisteredAt:   now.UTC(),
	}
}
