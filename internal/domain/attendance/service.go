package attendance

import (
	"context"
)

type Service interface {
	// CheckInOrOut resolves the identifier against the directory, stamps the
	// current time and applies the store's conditional write. Exactly one
	// store mutation per call, no retries.
	CheckInOrOut(ctx context.Context, req CheckRequest) (CheckResponse, error)

	// GetMyRecords returns the records of the authenticated caller (email
	// claim from the session token).
	GetMyRecords(ctx context.Context) ([]RecordResponse, error)

	GetRecordsForEmployee(ctx context.Context, employeeID string) ([]RecordResponse, error)

	GetRecordsForDate(ctx context.Context, filter DateFilter) ([]RecordResponse, error)

	GetRecordsByDateRange(ctx context.Context, filter RangeFilter) ([]RecordResponse, error)

	// GetAllRecordsGroupedByDate returns every joined record keyed by ISO
	// date, for the admin records view.
	GetAllRecordsGroupedByDate(ctx context.Context) (map[string][]RecordResponse, error)
}
