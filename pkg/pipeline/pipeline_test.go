package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/shikhar5647/sfiles/pkg/cache"
	"github.com/shikhar5647/sfiles/pkg/flowsheet"
)

func testSheet(t *testing.T) *flowsheet.Flowsheet {
	t.Helper()
	fs, err := flowsheet.Build(
		[]flowsheet.Unit{
			{ID: "F-101", Kind: flowsheet.KindFeed},
			{ID: "R-101", Kind: flowsheet.KindReactor},
			{ID: "P-101", Kind: flowsheet.KindProduct},
		},
		[]flowsheet.Stream{
			{Source: "F-101", Target: "R-101", Name: "S1"},
			{Source: "R-101", Target: "P-101", Name: "S2"},
		},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return fs
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestExecuteEncodeOnly(t *testing.T) {
	ctx := context.Background()
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, testLogger())
	defer runner.Close()

	fs := testSheet(t)

	result, err := runner.Execute(ctx, fs, Options{Name: "test"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := "FEED(F-101)>S1>CSTR(R-101)>S2>PRODUCT(P-101)"
	if result.Notation != want {
		t.Errorf("Notation = %q, want %q", result.Notation, want)
	}
	if result.CacheInfo.EncodeHit {
		t.Error("first run should not hit the cache")
	}
	if result.Stats.UnitCount != 3 || result.Stats.StreamCount != 2 {
		t.Errorf("Stats = %d units, %d streams", result.Stats.UnitCount, result.Stats.StreamCount)
	}
	if result.SheetHash == "" {
		t.Error("SheetHash should not be empty")
	}
	if len(result.Artifacts) != 0 {
		t.Errorf("no formats requested, got %d artifacts", len(result.Artifacts))
	}

	// Second run hits the cache and yields the same notation.
	again, err := runner.Execute(ctx, fs, Options{Name: "test"})
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !again.CacheInfo.EncodeHit {
		t.Error("second run should hit the cache")
	}
	if again.Notation != result.Notation {
		t.Errorf("cached notation = %q, want %q", again.Notation, result.Notation)
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, testLogger())
	defer runner.Close()

	fs := testSheet(t)

	if _, err := runner.Execute(ctx, fs, Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	result, err := runner.Execute(ctx, fs, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute (refresh): %v", err)
	}
	if result.CacheInfo.EncodeHit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestExecuteNoEntryPoint(t *testing.T) {
	fs, err := flowsheet.Build(
		[]flowsheet.Unit{{ID: "A"}, {ID: "B"}},
		[]flowsheet.Stream{
			{Source: "A", Target: "B", Name: "S1"},
			{Source: "B", Target: "A", Name: "S2"},
		},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	runner := NewRunner(cache.NewNullCache(), nil, testLogger())
	if _, err := runner.Execute(context.Background(), fs, Options{}); err == nil {
		t.Fatal("Execute on a fully cyclic flowsheet should fail")
	}
}

func TestExecuteRenderDOT(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewNullCache(), nil, testLogger())

	result, err := runner.Execute(ctx, testSheet(t), Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts[FormatDOT]) == 0 {
		t.Fatal("DOT artifact should not be empty")
	}
}

func TestSheetHash(t *testing.T) {
	fs := testSheet(t)
	h1 := SheetHash(fs)
	h2 := SheetHash(fs)
	if h1 == "" {
		t.Fatal("SheetHash should not be empty")
	}
	if h1 != h2 {
		t.Error("SheetHash should be deterministic")
	}

	other, err := flowsheet.Build([]flowsheet.Unit{{ID: "X", Kind: flowsheet.KindFeed}}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if SheetHash(other) == h1 {
		t.Error("different flowsheets should hash differently")
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"Empty", nil, false},
		{"AllValid", []string{"dot", "svg", "png"}, false},
		{"Invalid", []string{"svg", "pdf"}, true},
		{"EmptyString", []string{""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.Name != "flowsheet" {
		t.Errorf("Name = %q, want flowsheet", o.Name)
	}
	if o.Rankdir != DefaultRankdir {
		t.Errorf("Rankdir = %q, want %q", o.Rankdir, DefaultRankdir)
	}
	if o.Logger == nil {
		t.Error("Logger should be defaulted")
	}

	// Explicit values survive.
	o2 := Options{Name: "custom", Rankdir: "TB"}
	o2.SetDefaults()
	if o2.Name != "custom" || o2.Rankdir != "TB" {
		t.Errorf("SetDefaults overwrote explicit values: %+v", o2)
	}
}
