package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestNew_PingError ensures that ping failures are propagated
// even when closing the connection succeeds.
func TestNew_PingError(t *testing.T) {
	// Use an unreachable DSN to trigger ping error quickly
	dsn := "invalid:invalid@tcp(127.0.0.1:0)/dbname"
	db, err := New(dsn, 1, 1, time.Second)
	if err == nil {
		if db != nil {
			db.Close()
		}
		t.Fatalf("expected error, got nil")
	}
}

func TestUUID_RoundTrip(t *testing.T) {
	id := NewUUID()

	val, err := id.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	b, ok := val.([]byte)
	if !ok {
		t.Fatalf("expected []byte, got %T", val)
	}

	var scanned UUID
	if err := scanned.Scan(b); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if scanned != id {
		t.Errorf("round trip mismatch: %s != %s", scanned, id)
	}
}

func TestUUID_ScanRejectsNonBytes(t *testing.T) {
	var u UUID
	if err := u.Scan("not-bytes"); err == nil {
		t.Fatal("expected error scanning a string")
	}
}

func TestUUID_TextMarshalling(t *testing.T) {
	raw := uuid.New()
	id := UUID(raw)

	text, err := id.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(text) != raw.String() {
		t.Errorf("got %q, want %q", text, raw.String())
	}

	var parsed UUID
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if parsed != id {
		t.Errorf("got %s, want %s", parsed, id)
	}
}
