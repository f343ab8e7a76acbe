package dirpulse

import "time"

// Day is the length of one day used for age classification. Calendar months
// and leap seconds are not taken into account.
const Day = 24 * time.Hour

const (
	// AgingThreshold is the age from which a file is no longer fresh.
	AgingThreshold = 30 * Day
	// StaleThreshold is the age from which a file is considered stale.
	StaleThreshold = 180 * Day
)

// AgeBucket is the age category of a file.
type AgeBucket int

const (
	// Fresh files were modified less than 30 days ago, or in the future.
	Fresh AgeBucket = iota
	// Aging files were modified between 30 days and 6 months ago.
	Aging
	// Stale files were modified 6 months ago or earlier.
	Stale
)

// String returns the lower-case bucket name.
func (b AgeBucket) String() string {
	switch b {
	case Fresh:
		return "fresh"
	case Aging:
		return "aging"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Classify maps a modification time to an age bucket relative to now.
// Timestamps in the future are classified as Fresh.
func Classify(now, modified time.Time) AgeBucket {
	delta := now.Sub(modified)

	switch {
	case delta < AgingThreshold:
		return Fresh
	case delta < StaleThreshold:
		return Aging
	default:
		return Stale
	}
}
