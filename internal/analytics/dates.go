package analytics

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jafarshop/retailops/internal/domain"
)

// Date fields tried for each collection, most specific first
var (
	SaleDateFields     = []string{"timestamp", "date"}
	PurchaseDateFields = []string{"purchase_date", "date"}
	ExpenseDateFields  = []string{"expense_date", "date"}
)

// DateKind tags the shape a stored date value arrived in
type DateKind int

const (
	DateMissing DateKind = iota
	DateRaw
	DateTimestamp
)

func (k DateKind) String() string {
	switch k {
	case DateRaw:
		return "raw"
	case DateTimestamp:
		return "timestamp"
	default:
		return "missing"
	}
}

// TimeConverter is implemented by wrapped timestamp values
type TimeConverter interface {
	ToTime() time.Time
}

// DateValue is a stored date field classified by shape
type DateValue struct {
	Kind  DateKind
	Raw   interface{}
	Stamp TimeConverter
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ClassifyDate tags v as missing, a wrapped timestamp, or a raw value
func ClassifyDate(v interface{}) DateValue {
	switch val := v.(type) {
	case nil:
		return DateValue{Kind: DateMissing}
	case TimeConverter:
		return DateValue{Kind: DateTimestamp, Stamp: val}
	case map[string]interface{}:
		if ts, ok := wrappedTimestamp(val); ok {
			return DateValue{Kind: DateTimestamp, Stamp: ts}
		}
	case domain.Document:
		if ts, ok := wrappedTimestamp(val); ok {
			return DateValue{Kind: DateTimestamp, Stamp: ts}
		}
	}
	return DateValue{Kind: DateRaw, Raw: v}
}

// Resolve converts the value to a calendar time. Date-only strings are read in loc.
// ok is false when the value is missing or cannot be understood as a date.
func (d DateValue) Resolve(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	switch d.Kind {
	case DateTimestamp:
		t := d.Stamp.ToTime()
		return t, !t.IsZero()
	case DateRaw:
		return parseRaw(d.Raw, loc)
	default:
		return time.Time{}, false
	}
}

// ExtractDate returns the first field of doc, in priority order, that resolves to a valid date
func ExtractDate(doc domain.Document, fields []string, loc *time.Location) (time.Time, bool) {
	for _, field := range fields {
		if t, ok := ClassifyDate(doc[field]).Resolve(loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseRaw(v interface{}, loc *time.Location) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, !val.IsZero()
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case json.Number:
		ms, err := val.Int64()
		if err != nil {
			f, ferr := val.Float64()
			if ferr != nil {
				return time.Time{}, false
			}
			ms = int64(f)
		}
		return epochMillis(ms)
	case float64:
		return epochMillis(int64(val))
	case int64:
		return epochMillis(val)
	case int:
		return epochMillis(int64(val))
	default:
		return time.Time{}, false
	}
}

// epochMillis treats numeric dates as milliseconds since the Unix epoch
func epochMillis(ms int64) (time.Time, bool) {
	if ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// wrappedTimestamp recognises {"seconds": n, "nanoseconds": n} and the
// underscore-prefixed variant some exporters write.
func wrappedTimestamp(m map[string]interface{}) (domain.Timestamp, bool) {
	secs, ok := intValue(firstPresent(m, "seconds", "_seconds"))
	if !ok {
		return domain.Timestamp{}, false
	}
	nanos, _ := intValue(firstPresent(m, "nanoseconds", "_nanoseconds"))
	return domain.Timestamp{Seconds: secs, Nanoseconds: nanos}, true
}

func firstPresent(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
