package domain

// HealthLabel is the coarse qualitative classification of a measured
// download speed.
type HealthLabel string

const (
	HealthUnknown   HealthLabel = "Unknown"
	HealthWeak      HealthLabel = "Weak"
	HealthFair      HealthLabel = "Fair"
	HealthGood      HealthLabel = "Good"
	HealthExcellent HealthLabel = "Excellent"
)

// ComputeHealth classifies a download speed in Mbps. Thresholds are
// inclusive lower bounds evaluated in descending order, so an exact
// boundary value lands in the higher tier. nil means the measurement
// failed and maps to HealthUnknown.
func ComputeHealth(downloadMbps *float64) HealthLabel {
	if downloadMbps == nil {
		return HealthUnknown
	}
	switch dl := *downloadMbps; {
	case dl >= 100:
		return HealthExcellent
	case dl >= 50:
		return HealthGood
	case dl >= 10:
		return HealthFair
	default:
		return HealthWeak
	}
}

// Color returns the presentation hint string tied 1:1 to the label.
// Non-HTML consumers are free to drop it.
func (h HealthLabel) Color() string {
	switch h {
	case HealthExcellent:
		return "text-green-400"
	case HealthGood:
		return "text-yellow-400"
	case HealthFair:
		return "text-orange-400"
	case HealthWeak:
		return "text-red-500"
	default:
		return "text-gray-400"
	}
}
