// Package timezone provides the application clock and calendar helpers.
//
// Usage Examples:
//
//  1. Current time in the salon timezone:
//     now := timezone.Now()
//
//  2. Calendar day boundaries for booking windows:
//     from := timezone.StartOfDay(desiredStart)
//     to := from.AddDate(0, 0, searchDays)
//
//  3. Parsing caller supplied timestamps:
//     t, err := timezone.ParseInstant("2026-01-20T14:00:00-03:00")
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
// Use standard IANA timezone database names.
package timezone
