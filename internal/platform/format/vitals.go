package format

// VitalStatus classifies a single reading against the per-vital bands.
type VitalStatus string

const (
	StatusNormal   VitalStatus = "normal"
	StatusWarning  VitalStatus = "warning"
	StatusCritical VitalStatus = "critical"
	StatusUnknown  VitalStatus = "unknown"
)

// Vital names accepted by ClassifyVital.
const (
	VitalSystolic    = "blood_pressure_sys"
	VitalDiastolic   = "blood_pressure_dia"
	VitalHeartRate   = "heart_rate"
	VitalOxygenLevel = "oxygen_level"
	VitalTemperature = "temperature"
)

// bands give the classification cut points for one vital. A value below
// lowCritical or above highCritical is critical; between lowWarning and
// highNormal inclusive is normal; everything else is warning.
type bands struct {
	lowCritical  float64
	lowWarning   float64
	highNormal   float64
	highCritical float64
}

// Threshold table. These bands are a product decision (standard adult
// reference ranges); temperature is Fahrenheit to match the backend's
// accepted 95–110 range.
var vitalBands = map[string]bands{
	VitalSystolic:    {lowCritical: 80, lowWarning: 90, highNormal: 140, highCritical: 180},
	VitalDiastolic:   {lowCritical: 50, lowWarning: 60, highNormal: 90, highCritical: 120},
	VitalHeartRate:   {lowCritical: 50, lowWarning: 60, highNormal: 100, highCritical: 121},
	VitalOxygenLevel: {lowCritical: 90, lowWarning: 95, highNormal: 101, highCritical: 101},
	VitalTemperature: {lowCritical: 95, lowWarning: 97, highNormal: 99.5, highCritical: 103},
}

// ClassifyVital maps a vital name and reading to normal, warning, or
// critical, or StatusUnknown for an unrecognized vital name.
func ClassifyVital(name string, value float64) VitalStatus {
	b, ok := vitalBands[name]
	if !ok {
		return StatusUnknown
	}
	switch {
	case value < b.lowCritical || value >= b.highCritical:
		return StatusCritical
	case value < b.lowWarning || value > b.highNormal:
		return StatusWarning
	default:
		return StatusNormal
	}
}
