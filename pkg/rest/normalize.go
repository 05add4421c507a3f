package rest

import "time"

// dateFields are the property names whose non-empty string values are
// promoted to time.Time during normalization.
var dateFields = map[string]struct{}{
	"closed_at":      {},
	"committed_at":   {},
	"completed_at":   {},
	"created_at":     {},
	"date":           {},
	"due_on":         {},
	"last_edited_at": {},
	"last_read_at":   {},
	"merged_at":      {},
	"published_at":   {},
	"pushed_at":      {},
	"starred_at":     {},
	"started_at":     {},
	"submitted_at":   {},
	"timestamp":      {},
	"updated_at":     {},
}

// due_on sometimes arrives as a bare date rather than a full timestamp.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Normalize returns a structurally equivalent, independently-owned deep
// copy of a decoded JSON value, in which known date-bearing string fields
// are parsed into time.Time values. It recurses depth-first through
// objects and arrays. Unparseable or empty strings are left in place;
// normalization never fails. Nil input returns nil.
//
// Normalize is idempotent: fields already promoted are not strings and
// pass through unchanged.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if s, ok := child.(string); ok && s != "" {
				if _, isDate := dateFields[k]; isDate {
					if ts, ok := parseDate(s); ok {
						out[k] = ts
						continue
					}
				}
			}
			out[k] = Normalize(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = Normalize(child)
		}
		return out
	default:
		// Scalars (and time.Time from a prior pass) are immutable.
		return v
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
