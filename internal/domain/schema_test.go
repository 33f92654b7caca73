package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking() *Booking {
	return &Booking{
		BookingID:     "B1",
		Name:          "Alice",
		PhoneNumber:   "555",
		CheckinDate:   "2024-01-01",
		CheckoutDate:  "2024-01-03",
		ApartmentType: "Studio",
		Nights:        2,
	}
}

func TestResolveLayoutCanonicalHeader(t *testing.T) {
	layout, err := ResolveLayout(Headers())
	require.NoError(t, err)

	row := layout.Row(testBooking())
	assert.Equal(t, []interface{}{"B1", "Alice", "555", "2024-01-01", "2024-01-03", "Studio", int64(2)}, row)
	assert.Equal(t, 0, layout.IDColumn())
}

func TestResolveLayoutEmptyHeaderIsCanonical(t *testing.T) {
	layout, err := ResolveLayout(nil)
	require.NoError(t, err)

	assert.Equal(t, testBooking().Values(), layout.Row(testBooking()))
}

func TestResolveLayoutReorderedHeader(t *testing.T) {
	header := []string{"Nights", "name", "Notes", "booking id", "Phone Number", "Apartment Type", "Checkout Date", "Checkin Date"}

	layout, err := ResolveLayout(header)
	require.NoError(t, err)

	row := layout.Row(testBooking())
	assert.Equal(t, []interface{}{int64(2), "Alice", "", "B1", "555", "Studio", "2024-01-03", "2024-01-01"}, row)
	assert.Equal(t, 3, layout.IDColumn())
}

func TestResolveLayoutMissingColumn(t *testing.T) {
	_, err := ResolveLayout([]string{"Booking Id", "Name"})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestResolveLayoutDuplicateColumn(t *testing.T) {
	header := append(Headers(), "Name")

	_, err := ResolveLayout(header)
	assert.ErrorIs(t, err, ErrDuplicateHeader)
}

func TestColumnLetter(t *testing.T) {
	tests := map[int]string{
		0:   "A",
		6:   "G",
		25:  "Z",
		26:  "AA",
		51:  "AZ",
		701: "ZZ",
		702: "AAA",
	}

	for index, want := range tests {
		assert.Equal(t, want, ColumnLetter(index), "index %d", index)
	}
}

func TestRowRefSheetRow(t *testing.T) {
	assert.Equal(t, 2, RowRef{Index: 0}.SheetRow())
	assert.Equal(t, 7, RowRef{Index: 5}.SheetRow())
}
