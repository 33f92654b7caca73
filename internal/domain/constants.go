package domain

const (
	// HeaderRows number of header rows above the data rows in the backing table
	HeaderRows = 1

	// BookingIDHeader header cell of the column holding the booking id
	BookingIDHeader = "Booking Id"

	// DefaultMaxDeleteAttempts how many times a delete re-scans after the target row moved
	DefaultMaxDeleteAttempts = 3
)
