package attendance

// Check-in windows, as times of day in the configured timezone. The
// boundaries are asymmetric on purpose: 09:00:00 and 10:30:00 are both
// Present, 14:30:00 is still Late. Existing records depend on these exact
// cutoffs.
const (
	PresentWindowStart = "09:00:00"
	PresentWindowEnd   = "10:30:00"
	LateWindowEnd      = "14:30:00"
)

// Classify maps a time of day (15:04:05) to the status a record created at
// that moment gets. Pure and total; HH:MM:SS strings compare correctly
// byte-wise.
func Classify(timeOfDay string) Status {
	if timeOfDay >= PresentWindowStart && timeOfDay <= PresentWindowEnd {
		return StatusPresent
	}
	if timeOfDay > PresentWindowEnd && timeOfDay <= LateWindowEnd {
		return StatusLate
	}
	return StatusAbsent
}
