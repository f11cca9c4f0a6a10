package entity

import (
	"testing"
)

func TestJSON_ValueAndScanRoundTrip(t *testing.T) {
	in := JSON{"entity": "appointment", "entity_id": "abc-123"}

	v, err := in.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var out JSON
	if err := out.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if out["entity"] != "appointment" || out["entity_id"] != "abc-123" {
		t.Fatalf("round trip = %v", out)
	}
}

func TestJSON_EmptyValueIsNull(t *testing.T) {
	var empty JSON
	v, err := empty.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil driver value for empty JSON, got %v", v)
	}
}

func TestJSON_ScanNil(t *testing.T) {
	j := JSON{"stale": true}
	if err := j.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if j != nil {
		t.Fatalf("expected nil after scanning NULL, got %v", j)
	}
}

func TestJSON_ScanString(t *testing.T) {
	var j JSON
	if err := j.Scan(`{"action":"user.login"}`); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if j["action"] != "user.login" {
		t.Fatalf("scan string = %v", j)
	}
}
