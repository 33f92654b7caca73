package domain

// Booking represents one hotel booking row
type Booking struct {
	BookingID     string
	Name          string
	PhoneNumber   string
	CheckinDate   string // caller supplied, format is not validated
	CheckoutDate  string // caller supplied, format is not validated
	ApartmentType string
	Nights        int64
}

// Values returns the booking values in canonical column order (see Columns)
func (b *Booking) Values() []interface{} {
	return []interface{}{
		b.BookingID,
		b.Name,
		b.PhoneNumber,
		b.CheckinDate,
		b.CheckoutDate,
		b.ApartmentType,
		b.Nights,
	}
}

// RowRef points at one data row of a snapshot together with the id it held when scanned
type RowRef struct {
	Index     int // zero-based, data rows only
	BookingID string
}

// SheetRow returns the 1-based physical row number, header included
func (r RowRef) SheetRow() int {
	return r.Index + HeaderRows + 1
}
