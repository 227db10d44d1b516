package meetings

import (
	"fmt"
	"strings"
	"time"
)

// Wire timestamp layouts the scheduling API has been observed to emit:
// full RFC3339, zone-less date-times, and minute-precision date-times.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Timestamp is a time.Time that accepts the timestamp formats used on the
// wire by the scheduling API.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses a wire-format timestamp string.
func ParseTimestamp(value string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return err
	}
	t.Time = parsed.Time
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format("2006-01-02T15:04:05") + `"`), nil
}

// Meeting is the summary record returned by the listing and create
// endpoints. The client never mutates or deletes a meeting; records are
// read-only projections after creation.
type Meeting struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   Timestamp `json:"start_date"`
	EndDate     Timestamp `json:"end_date"`
}

// Attendee is owned by a MeetingDetail and has no independent lifecycle.
type Attendee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Task is owned by a MeetingDetail.
type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// MeetingDetail extends Meeting with the fields only the by-id lookup
// returns. Attendees and Tasks are always non-nil after decoding, possibly
// empty, never absent.
type MeetingDetail struct {
	Meeting
	Duration       int        `json:"duration"`
	Location       string     `json:"location"`
	Notes          string     `json:"notes"`
	NumReschedules int        `json:"num_reschedules"`
	ReminderSent   bool       `json:"reminder_sent"`
	Completed      bool       `json:"completed"`
	Attendees      []Attendee `json:"attendees"`
	Tasks          []Task     `json:"tasks"`
}
