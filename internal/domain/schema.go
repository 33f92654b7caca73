package domain

import (
	"fmt"
	"strings"
)

// Column one column of the booking schema
type Column struct {
	Header string // header cell text in the backing table
	Field  string // JSON field name on the HTTP surface
}

// Columns is the single name <-> position mapping used by reads and writes.
// The slice order is the canonical column order A..G.
var Columns = []Column{
	{Header: BookingIDHeader, Field: "booking_id"},
	{Header: "Name", Field: "name"},
	{Header: "Phone Number", Field: "phone_number"},
	{Header: "Checkin Date", Field: "checkin_date"},
	{Header: "Checkout Date", Field: "checkout_date"},
	{Header: "Apartment Type", Field: "apartment_type"},
	{Header: "Nights", Field: "nights"},
}

// Headers returns the canonical header row
func Headers() []string {
	headers := make([]string, len(Columns))
	for i, c := range Columns {
		headers[i] = c.Header
	}
	return headers
}

// NormaliseHeader makes header matching insensitive to case and spaces
func NormaliseHeader(v string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(v), " ", ""))
}

// Layout maps every schema column onto a physical column of a concrete header row
type Layout struct {
	width     int
	positions []int
}

// ResolveLayout matches the schema against a header row. An empty header
// yields the canonical layout.
func ResolveLayout(header []string) (*Layout, error) {
	if len(header) == 0 {
		positions := make([]int, len(Columns))
		for i := range Columns {
			positions[i] = i
		}
		return &Layout{width: len(Columns), positions: positions}, nil
	}

	index, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	layout := &Layout{
		width:     len(header),
		positions: make([]int, len(Columns)),
	}

	for i, c := range Columns {
		p, ok := index[NormaliseHeader(c.Header)]
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrMissingColumn, c.Header)
		}
		layout.positions[i] = p
	}

	return layout, nil
}

// Row builds a physical row for the booking, as wide as the header
func (l *Layout) Row(b *Booking) []interface{} {
	row := make([]interface{}, l.width)
	for i := range row {
		row[i] = ""
	}

	for i, v := range b.Values() {
		row[l.positions[i]] = v
	}

	return row
}

// IDColumn returns the zero-based physical column of the booking id
func (l *Layout) IDColumn() int {
	return l.positions[0]
}

// ColumnLetter converts a zero-based column index to A1 notation (0 -> A, 26 -> AA)
func ColumnLetter(index int) string {
	var letters []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		letters = append([]byte{byte('A' + (n-1)%26)}, letters...)
	}
	return string(letters)
}

func indexHeader(header []string) (map[string]int, error) {
	index := map[string]int{}
	for i, h := range header {
		k := NormaliseHeader(h)
		if k == "" {
			continue
		}
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateHeader, h)
		}
		index[k] = i
	}
	return index, nil
}
