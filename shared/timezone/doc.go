// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Booking timestamps:
//     booking.CreatedAt = timezone.Now()
//
//  2. Slot dates are calendar days and stay in UTC:
//     day, err := timezone.ParseCalendarDate("2025-01-26")
//
// The timezone is configured via the APP_TIMEZONE environment variable and is
// resolved on first use. Use standard IANA timezone database names.
package timezone
