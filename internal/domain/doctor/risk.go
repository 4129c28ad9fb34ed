package doctor

// RiskLevel buckets a patient for triage ordering in the doctor's list.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskInputs are the signals the triage heuristic weighs, taken from the
// latest data the portal already has loaded.
type RiskInputs struct {
	LatestSystolic  int
	LatestDiastolic int
	PendingReports  int
	EncountersIn30d int
}

// RiskConfig carries the weights and cut points of the triage heuristic.
// The values are a product decision, not a clinical contract; they are kept
// here in one place so stakeholders can tune them.
type RiskConfig struct {
	SystolicHigh      int // score +2 at or above
	SystolicElevated  int // score +1 at or above
	DiastolicHigh     int // score +2 at or above
	DiastolicElevated int // score +1 at or above
	BacklogHeavy      int // score +2 at or above
	BacklogSome       int // score +1 at or above
	FrequentVisits    int // score +1 at or above
	HighAt            int // total score for HIGH
	MediumAt          int // total score for MEDIUM
}

// DefaultRiskConfig are the shipped weights.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		SystolicHigh:      160,
		SystolicElevated:  140,
		DiastolicHigh:     100,
		DiastolicElevated: 90,
		BacklogHeavy:      3,
		BacklogSome:       1,
		FrequentVisits:    4,
		HighAt:            4,
		MediumAt:          2,
	}
}

// Risk scores the inputs against the config and buckets the total.
func Risk(in RiskInputs, cfg RiskConfig) RiskLevel {
	score := 0

	switch {
	case in.LatestSystolic >= cfg.SystolicHigh:
		score += 2
	case in.LatestSystolic >= cfg.SystolicElevated:
		score++
	}

	switch {
	case in.LatestDiastolic >= cfg.DiastolicHigh:
		score += 2
	case in.LatestDiastolic >= cfg.DiastolicElevated:
		score++
	}

	switch {
	case in.PendingReports >= cfg.BacklogHeavy:
		score += 2
	case in.PendingReports >= cfg.BacklogSome:
		score++
	}

	if in.EncountersIn30d >= cfg.FrequentVisits {
		score++
	}

	switch {
	case score >= cfg.HighAt:
		return RiskHigh
	case score >= cfg.MediumAt:
		return RiskMedium
	default:
		return RiskLow
	}
}
