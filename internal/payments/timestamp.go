package payments

import (
	"bytes"
	"encoding/json"
	"time"
)

// providerTimeLayouts are the formats seen in provider timestamps. Zoneless values are
// read as Asia/Jakarta wall time.
var providerTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

var jakarta = time.FixedZone("WIB", 7*60*60)

// Timestamp is a display-only provider time. Unparseable values decode to the zero
// time with Raw preserved, so an odd format never fails the surrounding object.
type Timestamp struct {
	time.Time
	Raw string
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a string: keep the literal (epoch numbers and the like) for display.
		t.Raw = string(data)
		return nil
	}
	t.Raw = s

	for _, layout := range providerTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, jakarta); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.IsZero() {
		return json.Marshal(t.Time.Format(time.RFC3339Nano))
	}
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	return []byte("null"), nil
}

// String is the parsed time in RFC3339, or the raw provider text when it did not parse.
func (t Timestamp) String() string {
	if !t.IsZero() {
		return t.Format(time.RFC3339)
	}
	return t.Raw
}
