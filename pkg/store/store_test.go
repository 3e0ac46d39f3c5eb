package store

import (
	"testing"
	"time"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord("plant", "abc123", "FEED(F1)>S1>PRODUCT(P1)", 2, 1)

	if rec.ID == "" {
		t.Error("ID should be generated")
	}
	if rec.Name != "plant" || rec.SheetHash != "abc123" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Units != 2 || rec.Streams != 1 {
		t.Errorf("counts = %d/%d, want 2/1", rec.Units, rec.Streams)
	}
	if rec.CreatedAt.IsZero() || rec.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt should be a UTC timestamp, got %v", rec.CreatedAt)
	}

	// IDs are unique per record.
	if other := NewRecord("plant", "abc123", "", 0, 0); other.ID == rec.ID {
		t.Error("two records should not share an ID")
	}
}
