package rest

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestNormalize_PromotesDateFields(t *testing.T) {
	in := decode(t, `{
		"created_at": "2024-03-01T12:00:00Z",
		"due_on": "2024-06-30",
		"title": "2024-03-01T12:00:00Z"
	}`)

	out := Normalize(in).(map[string]any)

	created, ok := out["created_at"].(time.Time)
	if !ok {
		t.Fatalf("created_at = %T, want time.Time", out["created_at"])
	}
	if created.Year() != 2024 || created.Month() != time.March {
		t.Errorf("created_at = %v", created)
	}

	if _, ok := out["due_on"].(time.Time); !ok {
		t.Errorf("due_on = %T, want time.Time (bare date layout)", out["due_on"])
	}

	// Only registered field names are promoted, not values that merely
	// look like dates.
	if _, ok := out["title"].(string); !ok {
		t.Errorf("title = %T, want untouched string", out["title"])
	}
}

func TestNormalize_Nested(t *testing.T) {
	in := decode(t, `{
		"items": [
			{"milestone": {"due_on": "2024-06-30", "closed_at": null}},
			{"updated_at": "2024-01-02T03:04:05Z"}
		]
	}`)

	out := Normalize(in).(map[string]any)
	items := out["items"].([]any)

	milestone := items[0].(map[string]any)["milestone"].(map[string]any)
	if _, ok := milestone["due_on"].(time.Time); !ok {
		t.Errorf("nested due_on = %T, want time.Time", milestone["due_on"])
	}
	if milestone["closed_at"] != nil {
		t.Errorf("null closed_at = %v, want nil", milestone["closed_at"])
	}
	if _, ok := items[1].(map[string]any)["updated_at"].(time.Time); !ok {
		t.Errorf("array element updated_at not promoted")
	}
}

func TestNormalize_UnparseableLeftInPlace(t *testing.T) {
	in := decode(t, `{"created_at": "not a date", "closed_at": ""}`)
	out := Normalize(in).(map[string]any)

	if out["created_at"] != "not a date" {
		t.Errorf("created_at = %v, want original string", out["created_at"])
	}
	if out["closed_at"] != "" {
		t.Errorf("empty closed_at = %v, want empty string", out["closed_at"])
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := decode(t, `{"created_at": "2024-03-01T12:00:00Z", "nested": {"merged_at": "2024-03-02T00:00:00Z"}}`)
	once := Normalize(in)
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize is not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestNormalize_DeepCopy(t *testing.T) {
	in := decode(t, `{"labels": [{"name": "bug"}], "state": "open"}`).(map[string]any)
	out := Normalize(in).(map[string]any)

	// Mutating the input must not reach into the result.
	in["state"] = "closed"
	in["labels"].([]any)[0].(map[string]any)["name"] = "feature"

	if out["state"] != "open" {
		t.Errorf("copy shares top-level map with input")
	}
	if name := out["labels"].([]any)[0].(map[string]any)["name"]; name != "bug" {
		t.Errorf("copy shares nested structures with input: name = %v", name)
	}
}

func TestNormalize_NilAndScalars(t *testing.T) {
	if Normalize(nil) != nil {
		t.Error("Normalize(nil) != nil")
	}
	if Normalize("hello") != "hello" {
		t.Error("string scalar changed")
	}
	if Normalize(float64(7)) != float64(7) {
		t.Error("number scalar changed")
	}
}
