package booking

import (
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkBooking(id, slotDate string, status models.BookingStatus) models.Booking {
	return models.Booking{ID: id, SlotDate: slotDate, Status: status}
}

func ids(bookings []models.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestPartition(t *testing.T) {
	// Fixed "now": June 15, 2026.
	now := time.Date(2026, time.June, 15, 14, 30, 0, 0, time.UTC)

	t.Run("today and future are current, past is recent", func(t *testing.T) {
		bookings := []models.Booking{
			mkBooking("past", "Jun 14, 2026", models.BookingUpcoming),
			mkBooking("today", "Jun 15, 2026", models.BookingUpcoming),
			mkBooking("future", "Jun 20, 2026", models.BookingUpcoming),
		}

		current, recent := Partition(bookings, now)
		assert.Equal(t, []string{"today", "future"}, ids(current))
		assert.Equal(t, []string{"past"}, ids(recent))
	})

	t.Run("cancelled is recent regardless of date", func(t *testing.T) {
		bookings := []models.Booking{
			mkBooking("cancelled-future", "Dec 25, 2026", models.BookingCancelled),
			mkBooking("cancelled-past", "Jan 1, 2026", models.BookingCancelled),
		}

		current, recent := Partition(bookings, now)
		assert.Empty(t, current)
		assert.Equal(t, []string{"cancelled-future", "cancelled-past"}, ids(recent))
	})

	t.Run("accepts both stored date layouts", func(t *testing.T) {
		bookings := []models.Booking{
			mkBooking("pretty", "Jun 16, 2026", models.BookingUpcoming),
			mkBooking("iso", "2026-06-16", models.BookingUpcoming),
		}

		current, recent := Partition(bookings, now)
		assert.Equal(t, []string{"pretty", "iso"}, ids(current))
		assert.Empty(t, recent)
	})

	t.Run("unparseable dates are recent", func(t *testing.T) {
		bookings := []models.Booking{
			mkBooking("garbage", "sometime soon", models.BookingUpcoming),
			mkBooking("empty", "", models.BookingUpcoming),
		}

		current, recent := Partition(bookings, now)
		assert.Empty(t, current)
		assert.Equal(t, []string{"garbage", "empty"}, ids(recent))
	})

	t.Run("every booking lands in exactly one partition", func(t *testing.T) {
		bookings := []models.Booking{
			mkBooking("a", "Jun 14, 2026", models.BookingUpcoming),
			mkBooking("b", "Jun 16, 2026", models.BookingUpcoming),
			mkBooking("c", "Jun 16, 2026", models.BookingCancelled),
			mkBooking("d", "???", models.BookingUpcoming),
		}

		current, recent := Partition(bookings, now)
		require.Equal(t, len(bookings), len(current)+len(recent))

		seen := make(map[string]int)
		for _, b := range append(current, recent...) {
			seen[b.ID]++
		}
		for _, b := range bookings {
			assert.Equal(t, 1, seen[b.ID], "booking %s", b.ID)
		}
	})

	t.Run("input order is preserved within each partition", func(t *testing.T) {
		bookings := []models.Booking{
			mkBooking("c1", "Jun 16, 2026", models.BookingUpcoming),
			mkBooking("r1", "Jun 1, 2026", models.BookingUpcoming),
			mkBooking("c2", "Jun 17, 2026", models.BookingUpcoming),
			mkBooking("r2", "Jun 2, 2026", models.BookingUpcoming),
		}

		current, recent := Partition(bookings, now)
		assert.Equal(t, []string{"c1", "c2"}, ids(current))
		assert.Equal(t, []string{"r1", "r2"}, ids(recent))
	})

	t.Run("empty input yields two empty partitions", func(t *testing.T) {
		current, recent := Partition(nil, now)
		assert.Empty(t, current)
		assert.Empty(t, recent)
	})
}
