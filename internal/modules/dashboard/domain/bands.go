package domain

// Band is a qualitative display class for a metric. Bands drive colour
// only; the numeric values pass through untouched.
type Band int

const (
	BandDanger Band = iota
	BandWarning
	BandAccent
	BandSuccess
)

func (b Band) String() string {
	switch b {
	case BandDanger:
		return "danger"
	case BandWarning:
		return "warning"
	case BandAccent:
		return "accent"
	case BandSuccess:
		return "success"
	}
	return "unknown"
}

// FormBand classifies training stress balance. Lower bounds are half-open:
// exactly -50 is warning, exactly -20 is accent, exactly 0 is success.
func FormBand(tsb float64) Band {
	switch {
	case tsb < -50:
		return BandDanger
	case tsb < -20:
		return BandWarning
	case tsb < 0:
		return BandAccent
	default:
		return BandSuccess
	}
}

// RecoveryBand classifies the 0-100 recovery score.
func RecoveryBand(score float64) Band {
	switch {
	case score < 40:
		return BandDanger
	case score < 65:
		return BandWarning
	default:
		return BandSuccess
	}
}
