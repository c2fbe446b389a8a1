package models

import "time"

const (
	CropPaddy        = "Paddy"
	CropWheat        = "Wheat"
	CropMaize        = "Maize"
	CropSugarcane    = "Sugarcane"
	CropNoneDetected = "None Detected"
)

// SoilTest is one simulated snapshot of a field's soil, crop and location
// state. All values are fixed at creation; records are only ever listed
// (newest first) or deleted wholesale by their owner.
type SoilTest struct {
	ID              string    `gorm:"primaryKey" json:"test_id"`
	OwnerCredential string    `gorm:"index;not null" json:"user_contact_or_email"`
	DeviceUserName  string    `gorm:"not null" json:"device_user_name"`
	LocationName    string    `gorm:"not null" json:"location_name"`
	Latitude        float64   `gorm:"not null" json:"latitude"`
	Longitude       float64   `gorm:"not null" json:"longitude"`
	Timestamp       time.Time `gorm:"not null;index" json:"test_timestamp"`

	CropDetected    string  `gorm:"not null" json:"crop_detected"`
	CropHealthIndex float64 `gorm:"not null" json:"crop_health_index"`

	OrganicMatterPct float64 `gorm:"not null" json:"organic_matter_pct"`
	ClayPct          float64 `gorm:"not null" json:"clay_pct"`
	SiltPct          float64 `gorm:"not null" json:"silt_pct"`
	SandPct          float64 `gorm:"not null" json:"sand_pct"`

	NitrogenPPM   int     `gorm:"not null" json:"nitrogen_ppm"`
	PhosphorusPPM int     `gorm:"not null" json:"phosphorus_ppm"`
	PotassiumPPM  int     `gorm:"not null" json:"potassium_ppm"`
	PHValue       float64 `gorm:"not null" json:"ph_value"`
	ECmScm        float64 `gorm:"column:ec_ms_cm;not null" json:"ec_ms_cm"`
}

func (test *SoilTest) CropPresent() bool {
	return test.CropDetected != CropNoneDetected
}
