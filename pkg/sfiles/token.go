package sfiles

import "github.com/shikhar5647/sfiles/pkg/flowsheet"

// FallbackToken is the notation token for unit kinds without a dedicated
// mapping. It guarantees every unit is representable.
const FallbackToken = "UNIT"

// tokens maps unit kinds to their SFILES tokens. The table is read-only and
// therefore safe to share across concurrent encodes.
var tokens = map[flowsheet.Kind]string{
	flowsheet.KindFeed:          "FEED",
	flowsheet.KindProduct:       "PRODUCT",
	flowsheet.KindReactor:       "CSTR",
	flowsheet.KindSeparator:     "SEP",
	flowsheet.KindHeatExchanger: "HX",
	flowsheet.KindPump:          "PUMP",
	flowsheet.KindCompressor:    "COMP",
	flowsheet.KindMixer:         "MIX",
	flowsheet.KindSplitter:      "SPLIT",
}

// TokenFor returns the SFILES token for a unit kind. Unknown kinds map to
// [FallbackToken]; TokenFor never fails.
func TokenFor(k flowsheet.Kind) string {
	if t, ok := tokens[k]; ok {
		return t
	}
	return FallbackToken
}
