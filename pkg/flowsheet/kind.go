package flowsheet

// Kind is the semantic type of a process unit. The set is closed; equipment
// outside it is represented as KindUnknown with the original label preserved
// in [Unit.Meta] under [LabelKey] by [ParseKind].
type Kind int

const (
	KindUnknown Kind = iota
	KindFeed
	KindProduct
	KindReactor
	KindSeparator
	KindHeatExchanger
	KindPump
	KindCompressor
	KindMixer
	KindSplitter
)

// LabelKey is the metadata key under which ParseKind stores the raw label of
// an unrecognized unit type.
const LabelKey = "label"

var kindNames = map[Kind]string{
	KindUnknown:       "Unknown",
	KindFeed:          "Feed",
	KindProduct:       "Product",
	KindReactor:       "Reactor",
	KindSeparator:     "Separator",
	KindHeatExchanger: "HeatExchanger",
	KindPump:          "Pump",
	KindCompressor:    "Compressor",
	KindMixer:         "Mixer",
	KindSplitter:      "Splitter",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// String returns the canonical name of the kind (e.g. "Reactor").
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return kindNames[KindUnknown]
}

// ParseKind maps a type label to a Kind. Unrecognized labels map to
// KindUnknown; ParseKind never fails, so every unit is representable.
// The second return reports whether the label was recognized.
func ParseKind(label string) (Kind, bool) {
	k, ok := kindsByName[label]
	return k, ok
}
