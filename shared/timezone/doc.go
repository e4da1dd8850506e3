// Package timezone pins every date the API reads or writes to one location,
// taken from APP_TIMEZONE (an IANA name such as "Asia/Jakarta") and falling
// back to UTC. Reservation dates travel as YYYY-MM-DD and are parsed with
// ParseDate; ParseISO also accepts the RFC 3339 forms clients send for
// check-in and check-out.
package timezone
