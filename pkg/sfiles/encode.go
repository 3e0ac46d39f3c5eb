package sfiles

import "github.com/shikhar5647/sfiles/pkg/flowsheet"

// Encode converts a flowsheet into its SFILES notation.
//
// Encode is side-effect-free and deterministic: the output depends only on
// the flowsheet's unit and stream declaration order, so encoding the same
// flowsheet twice yields byte-identical strings. An empty flowsheet encodes
// to the empty string.
//
// Returns flowsheet.ErrNoEntryPoint if a non-empty flowsheet has no unit
// with zero incoming streams. Structural errors (duplicate IDs, dangling
// stream endpoints) are caught earlier by [flowsheet.Build].
func Encode(fs *flowsheet.Flowsheet) (string, error) {
	events, err := traverse(fs)
	if err != nil {
		return "", err
	}
	return format(events), nil
}
