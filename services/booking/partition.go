package booking

import (
	"time"

	"medibook/models"
)

// slotDateLayouts are the date formats bookings have historically carried.
var slotDateLayouts = []string{"Jan 2, 2006", "2006-01-02"}

// parseSlotDate parses a booking's slot date. The second return value is
// false when the date is in none of the known layouts.
func parseSlotDate(s string) (time.Time, bool) {
	for _, layout := range slotDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Partition splits bookings into current and recent relative to now.
// Current means not cancelled and dated today or later; everything else,
// including every cancelled booking regardless of date and any booking whose
// date cannot be parsed, is recent. Input order is preserved.
func Partition(bookings []models.Booking, now time.Time) ([]models.Booking, []models.Booking) {
	// Parsed slot dates are midnight UTC, so compare against today in UTC.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var current, recent []models.Booking
	for _, b := range bookings {
		slotDate, ok := parseSlotDate(b.SlotDate)
		if ok && b.Status != models.BookingCancelled && !slotDate.Before(today) {
			current = append(current, b)
		} else {
			recent = append(recent, b)
		}
	}
	return current, recent
}
