package services

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
	"github.com/google/uuid"
)

const DefaultTestLocation = "Ludhiana, India"

// knownLocations maps the demo field locations to coordinates. Anything else
// gets a random point inside the India bounding box below.
var knownLocations = map[string]Coordinates{
	"Pune, India":      {Latitude: 18.5204, Longitude: 73.8567},
	"Patna, India":     {Latitude: 25.5941, Longitude: 85.1376},
	"Ludhiana, India":  {Latitude: 30.9010, Longitude: 75.8573},
	"Hyderabad, India": {Latitude: 17.3850, Longitude: 78.4867},
	"Kanpur, India":    {Latitude: 26.4499, Longitude: 80.3319},
}

var bootstrapLocations = []string{"Pune, India", "Hyderabad, India"}

// Simulator produces synthetic soil test records standing in for the
// AgriSense device. Deterministic shape, randomized content; it has no
// failure modes.
type Simulator struct {
	now func() time.Time
}

func NewSimulator() *Simulator {
	return &Simulator{now: time.Now}
}

// Simulate returns a fresh well-formed record for the given owner and field
// location.
func (sim *Simulator) Simulate(credential string, name string, locationName string) models.SoilTest {
	coords, known := knownLocations[locationName]
	if !known {
		coords = Coordinates{
			Latitude:  10 + rand.Float64()*25,
			Longitude: 70 + rand.Float64()*18,
		}
	}

	crop := drawCrop()
	healthIndex := 0.0
	if crop != models.CropNoneDetected {
		healthIndex = round2(0.5 + rand.Float64()*0.5)
	}

	organic := round2(0.5 + rand.Float64()*4.5)
	clay := round2(10 + rand.Float64()*30)
	silt := round2(20 + rand.Float64()*30)
	sand := round2(math.Max(0, 100-organic-clay-silt))

	return models.SoilTest{
		ID:              uuid.NewString(),
		OwnerCredential: credential,
		DeviceUserName:  name,
		LocationName:    locationName,
		Latitude:        round4(coords.Latitude),
		Longitude:       round4(coords.Longitude),
		Timestamp:       sim.now(),
		CropDetected:    crop,
		CropHealthIndex: healthIndex,

		OrganicMatterPct: organic,
		ClayPct:          clay,
		SiltPct:          silt,
		SandPct:          sand,

		NitrogenPPM:   50 + rand.IntN(351),
		PhosphorusPPM: 10 + rand.IntN(71),
		PotassiumPPM:  100 + rand.IntN(401),
		PHValue:       round1(5.5 + rand.Float64()*3.0),
		ECmScm:        round2(0.1 + rand.Float64()*3.9),
	}
}

// BootstrapLocation picks a field location for synthesized demo records.
func BootstrapLocation() string {
	return bootstrapLocations[rand.IntN(len(bootstrapLocations))]
}

// drawCrop is the weighted stand-in for the device's crop detection model:
// Paddy .2, Wheat .2, Maize .2, Sugarcane .1, None Detected .3.
func drawCrop() string {
	draw := rand.Float64()
	switch {
	case draw < 0.2:
		return models.CropPaddy
	case draw < 0.4:
		return models.CropWheat
	case draw < 0.6:
		return models.CropMaize
	case draw < 0.7:
		return models.CropSugarcane
	default:
		return models.CropNoneDetected
	}
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func round4(value float64) float64 {
	return math.Round(value*10000) / 10000
}
