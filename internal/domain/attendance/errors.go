package attendance

import "errors"

// Attendance domain errors
var (
	ErrStorageUnavailable = errors.New("attendance store unavailable")
)
