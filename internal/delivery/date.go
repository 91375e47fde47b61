package delivery

import "time"

// Deliveries go out on Wednesdays and Saturdays only.
var deliveryDays = map[time.Weekday]bool{
	time.Wednesday: true,
	time.Saturday:  true,
}

// IsDeliveryDay reports whether date falls on a delivery weekday.
func IsDeliveryDay(date time.Time) bool {
	return deliveryDays[date.Weekday()]
}

// NextDeliveryDate returns the next available delivery date after from.
// It advances at least one calendar day, so it never returns from's own date
// even when that is a delivery day, then scans forward to the next Wednesday
// or Saturday. The scan is bounded: one of the two weekdays always falls
// within any 7-day window.
func NextDeliveryDate(from time.Time) time.Time {
	next := from.AddDate(0, 0, 1)
	for attempts := 0; !IsDeliveryDay(next) && attempts < 7; attempts++ {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// UpcomingDeliveryDates returns the next n delivery dates after from, in
// chronological order.
func UpcomingDeliveryDates(from time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	current := NextDeliveryDate(from)
	for i := 0; i < n; i++ {
		dates = append(dates, current)
		current = NextDeliveryDate(current)
	}
	return dates
}
