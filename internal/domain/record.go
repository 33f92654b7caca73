package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Field one header-keyed cell of a row
type Field struct {
	Key   string
	Value interface{}
}

// Record one decoded data row. Fields keep the header order; the JSON form
// is an object with keys in that order.
type Record []Field

// Get returns the value stored under the header key
func (r Record) Get(key string) (interface{}, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Table snapshot of the backing table: header row plus decoded data rows
type Table struct {
	Header  []string
	Records []Record

	idColumn int
}

// NewTable decodes raw rows (first row = header). Cells missing from short rows
// decode as "", integral numbers as int64. Columns with an empty header cell are skipped.
// Data rows under a header without the booking id column are ErrMissingColumn.
func NewTable(rows [][]interface{}) (*Table, error) {
	table := &Table{
		Header:   []string{},
		Records:  []Record{},
		idColumn: -1,
	}

	if len(rows) == 0 {
		return table, nil
	}

	for _, v := range rows[0] {
		table.Header = append(table.Header, CellString(v))
	}

	if _, err := indexHeader(table.Header); err != nil {
		return nil, err
	}

	for i, h := range table.Header {
		if NormaliseHeader(h) == NormaliseHeader(BookingIDHeader) {
			table.idColumn = i
			break
		}
	}

	if table.idColumn < 0 && len(rows) > 1 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, BookingIDHeader)
	}

	for _, row := range rows[1:] {
		record := make(Record, 0, len(table.Header))
		for i, h := range table.Header {
			if NormaliseHeader(h) == "" {
				continue
			}

			var v interface{} = ""
			if i < len(row) {
				v = normaliseCell(row[i])
			}

			record = append(record, Field{Key: h, Value: v})
		}

		table.Records = append(table.Records, record)
	}

	return table, nil
}

// Len number of data rows
func (t *Table) Len() int {
	return len(t.Records)
}

// Find returns the first data row whose booking id, compared as a string,
// equals bookingID
func (t *Table) Find(bookingID string) (int, Record, bool) {
	if t.idColumn < 0 {
		return -1, nil, false
	}

	key := t.Header[t.idColumn]
	for i, record := range t.Records {
		if v, ok := record.Get(key); ok && CellString(v) == bookingID {
			return i, record, true
		}
	}

	return -1, nil, false
}

// CellString renders a cell value the way ids are compared
func CellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func normaliseCell(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x)
		}
		return x
	case int:
		return int64(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return x
	}
}
