package metrics

import "testing"

func TestRegisterIsIdempotent(t *testing.T) {
	// A second registration must not panic
	Register()
	Register()

	IncHTTP("/bookings")
	IncBooking("create", "created")
}
