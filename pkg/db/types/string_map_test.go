package dbtypes

import "testing"

func TestStringMapScanRoundTrip(t *testing.T) {
	var m StringMap
	if err := m.Scan([]byte(`{"region":"EU","tier":"Safe"}`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if m["region"] != "EU" || m["tier"] != "Safe" {
		t.Fatalf("unexpected map %v", m)
	}

	val, err := m.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	var back StringMap
	if err := back.Scan(val); err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if back["region"] != "EU" || back["tier"] != "Safe" {
		t.Fatalf("round trip lost data: %v", back)
	}
}

func TestStringMapScanNilAndEmpty(t *testing.T) {
	var m StringMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}

	if err := m.Scan("{}"); err != nil {
		t.Fatalf("scan empty object: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestStringMapScanRejectsNonObject(t *testing.T) {
	var m StringMap
	if err := m.Scan([]byte(`["EU"]`)); err == nil {
		t.Fatal("expected error for non-object payload")
	}
	if err := m.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestStringMapCloneIsIndependent(t *testing.T) {
	orig := StringMap{"region": "EU"}
	cp := orig.Clone()
	cp["region"] = "US"
	if orig["region"] != "EU" {
		t.Fatalf("clone mutated original: %v", orig)
	}
}
