package flowsheet

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		label    string
		want     Kind
		wantKnow bool
	}{
		{"Feed", KindFeed, true},
		{"Product", KindProduct, true},
		{"Reactor", KindReactor, true},
		{"Separator", KindSeparator, true},
		{"HeatExchanger", KindHeatExchanger, true},
		{"Pump", KindPump, true},
		{"Compressor", KindCompressor, true},
		{"Mixer", KindMixer, true},
		{"Splitter", KindSplitter, true},
		{"Unknown", KindUnknown, true},
		{"Distillation", KindUnknown, false},
		{"reactor", KindUnknown, false}, // case-sensitive
		{"", KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, known := ParseKind(tt.label)
			if got != tt.want || known != tt.wantKnow {
				t.Errorf("ParseKind(%q) = %v, %v; want %v, %v",
					tt.label, got, known, tt.want, tt.wantKnow)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindReactor.String(); got != "Reactor" {
		t.Errorf("KindReactor.String() = %q, want Reactor", got)
	}
	if got := Kind(99).String(); got != "Unknown" {
		t.Errorf("out-of-range Kind.String() = %q, want Unknown", got)
	}
}
