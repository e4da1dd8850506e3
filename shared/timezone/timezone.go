package timezone

import (
	"errors"
	"hotel/config"
	"hotel/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location

	ErrInvalidDate = errors.New("invalid date")
)

func init() {
	cfg := config.Get()

	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC")

		appLocation = time.UTC

		return
	}

	appLocation = loc
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today returns midnight of the current day in the application timezone.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// ParseDate parses a strict YYYY-MM-DD value.
func ParseDate(value string) (time.Time, error) {
	t, err := Parse(constant.DateFormat, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	constant.DateFormat,
}

// ParseISO accepts an ISO-8601 date or date-time. Values without an offset
// are read in the application timezone.
func ParseISO(value string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
