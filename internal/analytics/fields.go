package analytics

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
)

// Loose accessors over stored documents. Missing or malformed values fall
// back to zero values instead of failing the whole computation.

func decimalValue(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(val), true
	case float32:
		return decimal.NewFromFloat32(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case int32:
		return decimal.NewFromInt32(val), true
	default:
		return decimal.Zero, false
	}
}

func intValue(v interface{}) (int64, bool) {
	d, ok := decimalValue(v)
	if !ok {
		return 0, false
	}
	return d.IntPart(), true
}

func decimalField(doc map[string]interface{}, keys ...string) (decimal.Decimal, bool) {
	for _, k := range keys {
		if d, ok := decimalValue(doc[k]); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

func intField(doc map[string]interface{}, keys ...string) int {
	for _, k := range keys {
		if n, ok := intValue(doc[k]); ok {
			return int(n)
		}
	}
	return 0
}

func stringField(doc map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := doc[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func objectField(doc map[string]interface{}, key string) map[string]interface{} {
	switch v := doc[key].(type) {
	case map[string]interface{}:
		return v
	case domain.Document:
		return v
	default:
		return nil
	}
}

func listField(doc map[string]interface{}, key string) []map[string]interface{} {
	raw, ok := doc[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case map[string]interface{}:
			out = append(out, v)
		case domain.Document:
			out = append(out, v)
		}
	}
	return out
}
