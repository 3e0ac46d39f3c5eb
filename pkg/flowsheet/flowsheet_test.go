package flowsheet

import (
	"errors"
	"testing"
)

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name    string
		units   []Unit
		streams []Stream
		wantErr error
	}{
		{
			name: "Valid",
			units: []Unit{
				{ID: "F1", Kind: KindFeed},
				{ID: "R1", Kind: KindReactor},
			},
			streams: []Stream{{Source: "F1", Target: "R1", Name: "S1"}},
		},
		{
			name:    "EmptyID",
			units:   []Unit{{ID: ""}},
			wantErr: ErrInvalidUnitID,
		},
		{
			name:    "DuplicateID",
			units:   []Unit{{ID: "F1"}, {ID: "F1"}},
			wantErr: ErrDuplicateUnitID,
		},
		{
			name:    "DanglingSource",
			units:   []Unit{{ID: "R1"}},
			streams: []Stream{{Source: "F1", Target: "R1", Name: "S1"}},
			wantErr: ErrDanglingStream,
		},
		{
			name:    "DanglingTarget",
			units:   []Unit{{ID: "F1"}},
			streams: []Stream{{Source: "F1", Target: "R1", Name: "S1"}},
			wantErr: ErrDanglingStream,
		},
		{
			name: "SelfLoop",
			units: []Unit{
				{ID: "R1", Kind: KindReactor},
			},
			streams: []Stream{{Source: "R1", Target: "R1", Name: "S1"}},
		},
		{
			name: "ParallelStreams",
			units: []Unit{
				{ID: "A"}, {ID: "B"},
			},
			streams: []Stream{
				{Source: "A", Target: "B", Name: "S1"},
				{Source: "A", Target: "B", Name: "S2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := Build(tt.units, tt.streams)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Build error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := fs.UnitCount(); got != len(tt.units) {
				t.Errorf("UnitCount = %d, want %d", got, len(tt.units))
			}
			if got := fs.StreamCount(); got != len(tt.streams) {
				t.Errorf("StreamCount = %d, want %d", got, len(tt.streams))
			}
		})
	}
}

func TestBuildCopiesInputs(t *testing.T) {
	units := []Unit{{ID: "A"}, {ID: "B"}}
	streams := []Stream{{Source: "A", Target: "B", Name: "S1"}}

	fs, err := Build(units, streams)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	units[0].ID = "mutated"
	streams[0].Name = "mutated"

	if fs.Units()[0].ID != "A" {
		t.Error("mutating the input units slice changed the flowsheet")
	}
	if fs.Streams()[0].Name != "S1" {
		t.Error("mutating the input streams slice changed the flowsheet")
	}
}

func TestRootsOrder(t *testing.T) {
	// Roots come back in declaration order, not topological or sorted order.
	units := []Unit{
		{ID: "Z-feed", Kind: KindFeed},
		{ID: "mid", Kind: KindReactor},
		{ID: "A-feed", Kind: KindFeed},
	}
	streams := []Stream{
		{Source: "Z-feed", Target: "mid", Name: "S1"},
		{Source: "A-feed", Target: "mid", Name: "S2"},
	}

	fs, err := Build(units, streams)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	roots := fs.Roots()
	if len(roots) != 2 {
		t.Fatalf("Roots = %d, want 2", len(roots))
	}
	if roots[0].ID != "Z-feed" || roots[1].ID != "A-feed" {
		t.Errorf("Roots order = [%s %s], want [Z-feed A-feed]", roots[0].ID, roots[1].ID)
	}
}

func TestOutgoingOrder(t *testing.T) {
	units := []Unit{{ID: "SP"}, {ID: "A"}, {ID: "B"}, {ID: "C"}}
	streams := []Stream{
		{Source: "SP", Target: "B", Name: "S2"},
		{Source: "SP", Target: "A", Name: "S1"},
		{Source: "SP", Target: "C", Name: "S3"},
	}

	fs, err := Build(units, streams)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	out := fs.Outgoing("SP")
	want := []string{"S2", "S1", "S3"}
	if len(out) != len(want) {
		t.Fatalf("Outgoing = %d streams, want %d", len(out), len(want))
	}
	for i, s := range out {
		if s.Name != want[i] {
			t.Errorf("Outgoing[%d] = %s, want %s", i, s.Name, want[i])
		}
	}

	if fs.Outgoing("A") != nil {
		t.Error("Outgoing of a sink should be nil")
	}
	if fs.Outgoing("missing") != nil {
		t.Error("Outgoing of a missing unit should be nil")
	}
}

func TestDegrees(t *testing.T) {
	units := []Unit{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	streams := []Stream{
		{Source: "A", Target: "B", Name: "S1"},
		{Source: "A", Target: "C", Name: "S2"},
		{Source: "B", Target: "C", Name: "S3"},
	}

	fs, err := Build(units, streams)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := fs.OutDegree("A"); got != 2 {
		t.Errorf("OutDegree(A) = %d, want 2", got)
	}
	if got := fs.InDegree("C"); got != 2 {
		t.Errorf("InDegree(C) = %d, want 2", got)
	}
	if got := fs.InDegree("A"); got != 0 {
		t.Errorf("InDegree(A) = %d, want 0", got)
	}
	if got := fs.InDegree("missing"); got != 0 {
		t.Errorf("InDegree(missing) = %d, want 0", got)
	}
}

func TestUnitLookup(t *testing.T) {
	fs, err := Build([]Unit{{ID: "R1", Kind: KindReactor}}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	u, ok := fs.Unit("R1")
	if !ok || u.Kind != KindReactor {
		t.Errorf("Unit(R1) = %+v, %v", u, ok)
	}
	if u.Meta == nil {
		t.Error("Meta should be non-nil after Build")
	}
	if _, ok := fs.Unit("nope"); ok {
		t.Error("Unit(nope) should not be found")
	}
}

func TestEmptyFlowsheet(t *testing.T) {
	fs, err := Build(nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fs.UnitCount() != 0 || fs.StreamCount() != 0 {
		t.Error("empty build should have no units or streams")
	}
	if fs.Roots() != nil {
		t.Error("empty flowsheet should have nil roots")
	}
}
