package sheets

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage"
	"github.com/m04kA/hotel-booking-directory/internal/integrations/google/googletest"
	"github.com/m04kA/hotel-booking-directory/pkg/logger"
)

func header() []interface{} {
	return []interface{}{"Booking Id", "Name", "Phone Number", "Checkin Date", "Checkout Date", "Apartment Type", "Nights"}
}

func alice() *domain.Booking {
	return &domain.Booking{
		BookingID:     "B1",
		Name:          "Alice",
		PhoneNumber:   "555",
		CheckinDate:   "2024-01-01",
		CheckoutDate:  "2024-01-03",
		ApartmentType: "Studio",
		Nights:        2,
	}
}

func openRepository(t *testing.T, srv *googletest.Server) *Repository {
	t.Helper()

	service, err := gsheets.NewService(context.Background(), option.WithHTTPClient(srv.Client()), srv.Endpoint())
	require.NoError(t, err)

	repo, err := Open(context.Background(), service, Config{
		SpreadsheetID: srv.SpreadsheetID,
		Worksheet:     "sheet1",
	}, logger.NewWithWriter(io.Discard, logger.LevelError))
	require.NoError(t, err)

	return repo
}

func TestOpenWorksheetNotFound(t *testing.T) {
	srv := googletest.NewServer("Sheet1", nil)
	defer srv.Close()

	service, err := gsheets.NewService(context.Background(), option.WithHTTPClient(srv.Client()), srv.Endpoint())
	require.NoError(t, err)

	_, err = Open(context.Background(), service, Config{SpreadsheetID: srv.SpreadsheetID, Worksheet: "Bookings"},
		logger.NewWithWriter(io.Discard, logger.LevelError))
	assert.ErrorIs(t, err, ErrWorksheetNotFound)

	_, err = Open(context.Background(), service, Config{SpreadsheetID: "missing", Worksheet: "Sheet1"},
		logger.NewWithWriter(io.Discard, logger.LevelError))
	assert.ErrorIs(t, err, ErrSpreadsheetUnavailable)
}

func TestAppendThenSnapshot(t *testing.T) {
	srv := googletest.NewServer("Sheet1", [][]interface{}{header()})
	defer srv.Close()

	repo := openRepository(t, srv)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, alice()))

	rows := srv.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"B1", "Alice", "555", "2024-01-01", "2024-01-03", "Studio", float64(2)}, rows[1])

	table, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	index, record, found := table.Find("B1")
	require.True(t, found)
	assert.Equal(t, 0, index)

	phone, _ := record.Get("Phone Number")
	assert.Equal(t, "555", phone)
	nights, _ := record.Get("Nights")
	assert.Equal(t, int64(2), nights)
}

func TestAppendFollowsHeaderOrder(t *testing.T) {
	srv := googletest.NewServer("Sheet1", [][]interface{}{
		{"Name", "Nights", "Booking Id", "Apartment Type", "Phone Number", "Checkout Date", "Checkin Date"},
	})
	defer srv.Close()

	repo := openRepository(t, srv)
	require.NoError(t, repo.Append(context.Background(), alice()))

	rows := srv.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"Alice", float64(2), "B1", "Studio", "555", "2024-01-03", "2024-01-01"}, rows[1])
}

func TestAppendMissingColumn(t *testing.T) {
	srv := googletest.NewServer("Sheet1", [][]interface{}{{"Booking Id", "Name"}})
	defer srv.Close()

	repo := openRepository(t, srv)

	err := repo.Append(context.Background(), alice())
	assert.ErrorIs(t, err, storage.ErrSchema)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Len(t, srv.Rows(), 1)
}

func TestDeleteRow(t *testing.T) {
	srv := googletest.NewServer("Sheet1", [][]interface{}{
		header(),
		{"B1", "Alice", "555", "2024-01-01", "2024-01-03", "Studio", float64(2)},
		{"B2", "Bob", "556", "2024-02-01", "2024-02-02", "Suite", float64(1)},
	})
	defer srv.Close()

	repo := openRepository(t, srv)

	require.NoError(t, repo.DeleteRow(context.Background(), domain.RowRef{Index: 1, BookingID: "B2"}))

	rows := srv.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "B1", rows[1][0])
}

func TestDeleteRowMoved(t *testing.T) {
	srv := googletest.NewServer("Sheet1", [][]interface{}{
		header(),
		{"B1", "Alice"},
		{"B2", "Bob"},
	})
	defer srv.Close()

	repo := openRepository(t, srv)
	ctx := context.Background()

	table, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	index, _, found := table.Find("B2")
	require.True(t, found)

	// someone removed B1 by hand after the snapshot
	srv.SetRows([][]interface{}{header(), {"B2", "Bob"}})

	err = repo.DeleteRow(ctx, domain.RowRef{Index: index, BookingID: "B2"})
	assert.ErrorIs(t, err, storage.ErrRowMoved)
	assert.Len(t, srv.Rows(), 2)

	err = repo.DeleteRow(ctx, domain.RowRef{Index: 5, BookingID: "B2"})
	assert.ErrorIs(t, err, storage.ErrRowMoved)
}

func TestSnapshotUpstreamFailure(t *testing.T) {
	srv := googletest.NewServer("Sheet1", [][]interface{}{header()})
	defer srv.Close()

	repo := openRepository(t, srv)
	srv.FailNext(http.StatusForbidden)

	_, err := repo.Snapshot(context.Background())
	assert.ErrorIs(t, err, storage.ErrRequest)
}

func TestSheetRangeQuotesTitle(t *testing.T) {
	r := &Repository{title: "Guest's list"}

	assert.Equal(t, "'Guest''s list'", r.sheetRange(""))
	assert.Equal(t, "'Guest''s list'!1:1", r.sheetRange("1:1"))
}
