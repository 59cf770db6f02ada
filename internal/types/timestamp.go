package types

import (
	"encoding/json"
	"strings"
	"time"
)

// timestampLayouts are tried in order when decoding server timestamps
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
}

// Timestamp is a server-owned point in time
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses any of the formats the backend emits.
// Values without a zone are read as UTC.
func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	return Timestamp{}, false
}

// UnmarshalJSON decodes a string timestamp. Unparseable or null values
// decode to the zero time instead of failing the whole record.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = Timestamp{}
		return nil
	}
	parsed, _ := ParseTimestamp(s)
	*t = parsed
	return nil
}

// MarshalJSON encodes the timestamp as RFC3339, or null when unset
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// MarshalYAML encodes the timestamp as RFC3339
func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC().Format(time.RFC3339), nil
}

// Local formats the timestamp in loc with the given layout, or "N/A" when unset
func (t Timestamp) Local(loc *time.Location, layout string) string {
	if t.IsZero() {
		return "N/A"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}
