package service

import "bilateral/internal/domains/booking/model"

// matchesOwner is the only cancellation credential check. Both sides are trimmed before
// they get here, and the comparison is exact and case-sensitive.
func matchesOwner(booking *model.Booking, name, email string) bool {
	return booking.Name == name && booking.Email == email
}
