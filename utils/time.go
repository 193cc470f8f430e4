package utils

import "time"

// ToBusinessTime converts UTC time to the spa's local time zone. All human
// facing timestamps (created-at display, reminder wording) use this zone;
// everything crossing the API stays UTC.
func ToBusinessTime(t time.Time) time.Time {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		return t // Fallback to UTC if the zone is not available
	}
	return t.In(loc)
}
