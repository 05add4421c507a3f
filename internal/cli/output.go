package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// printJSON writes v as indented JSON to stdout, the scriptable output
// format. Normalized date fields render as RFC 3339 strings.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Accessors over the normalizer's generic object graph. Missing or
// differently-typed fields yield zero values; list rendering tolerates
// partial resources.

func stringField(v any, name string) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj[name].(string)
	return s
}

func numberField(v any, name string) int {
	obj, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	f, _ := obj[name].(float64)
	return int(f)
}

func timeField(v any, name string) time.Time {
	obj, ok := v.(map[string]any)
	if !ok {
		return time.Time{}
	}
	t, _ := obj[name].(time.Time)
	return t
}

func nestedField(v any, names ...string) any {
	cur := v
	for _, name := range names {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[name]
	}
	return cur
}

// relativeTime renders t as a short "3d ago" style age.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
