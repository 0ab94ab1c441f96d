package repository

import "time"

// revisionLayout keeps sub-second precision so two saves in the same second
// produce distinct revisions.
const revisionLayout = time.RFC3339Nano

// nowUTC returns the current UTC time formatted for updated_at columns.
func nowUTC() string {
	return time.Now().UTC().Format(revisionLayout)
}

// parseTime parses an updated_at value, yielding the zero time when the
// column holds anything else.
func parseTime(s string) time.Time {
	t, err := time.Parse(revisionLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
