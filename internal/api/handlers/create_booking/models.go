package create_booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
)

var (
	errMissingField = errors.New("field required")
	errNotInteger   = errors.New("value is not a valid integer")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookingID     *string     `json:"booking_id"`
	Name          *string     `json:"name"`
	PhoneNumber   *string     `json:"phone_number"`
	CheckinDate   *string     `json:"checkin_date"`
	CheckoutDate  *string     `json:"checkout_date"`
	ApartmentType *string     `json:"apartment_type"`
	Nights        interface{} `json:"nights"` // json.Number или строка с целым числом
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID     string `json:"booking_id"`
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	CheckinDate   string `json:"checkin_date"`
	CheckoutDate  string `json:"checkout_date"`
	ApartmentType string `json:"apartment_type"`
	Nights        int64  `json:"nights"`
}

// ToDomain проверяет, что все поля переданы, и конвертирует запрос в доменную модель
func (r *CreateBookingRequest) ToDomain() (*domain.Booking, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"booking_id", r.BookingID},
		{"name", r.Name},
		{"phone_number", r.PhoneNumber},
		{"checkin_date", r.CheckinDate},
		{"checkout_date", r.CheckoutDate},
		{"apartment_type", r.ApartmentType},
	}
	for _, f := range fields {
		if f.value == nil {
			return nil, fmt.Errorf("%s: %w", f.name, errMissingField)
		}
	}

	nights, err := parseNights(r.Nights)
	if err != nil {
		return nil, fmt.Errorf("nights: %w", err)
	}

	return &domain.Booking{
		BookingID:     *r.BookingID,
		Name:          *r.Name,
		PhoneNumber:   *r.PhoneNumber,
		CheckinDate:   *r.CheckinDate,
		CheckoutDate:  *r.CheckoutDate,
		ApartmentType: *r.ApartmentType,
		Nights:        nights,
	}, nil
}

// FromDomain конвертирует доменную модель в HTTP ответ
func FromDomain(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:     b.BookingID,
		Name:          b.Name,
		PhoneNumber:   b.PhoneNumber,
		CheckinDate:   b.CheckinDate,
		CheckoutDate:  b.CheckoutDate,
		ApartmentType: b.ApartmentType,
		Nights:        b.Nights,
	}
}

func parseNights(v interface{}) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, errMissingField

	case json.Number:
		i, err := n.Int64()
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return 0, errNotInteger
		}
		f, err := n.Float64()
		// float64(math.MaxInt64) округляется до 2^63, поэтому граница строгая
		if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, errNotInteger
		}
		return int64(f), nil

	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, errNotInteger
		}
		return i, nil

	default:
		return 0, errNotInteger
	}
}
