package models

// Classification filters for booking listings. A query-time partition, not a
// stored attribute: WAITING/REJECTED match on status, the rest on the time
// window relative to "now".
const (
	FilterAll      = "ALL"
	FilterCurrent  = "CURRENT"
	FilterPast     = "PAST"
	FilterFuture   = "FUTURE"
	FilterWaiting  = "WAITING"
	FilterRejected = "REJECTED"
)

const (
	// DefaultPageSize applies when a listing request carries no size.
	DefaultPageSize = 10

	// Export range for the bookings report, relative to now.
	DefaultExportRangeMonthsBefore = 1
	DefaultExportRangeMonthsAfter  = 2

	// RateLimitRequests / RateLimitWindow bound requests per client.
	RateLimitRequests = 30
	RateLimitWindow   = 60 // seconds
)
