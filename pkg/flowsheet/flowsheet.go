// Package flowsheet models process flowsheets: process units connected by
// directed, named material or energy streams.
//
// A [Flowsheet] is built once from caller-supplied unit and stream lists via
// [Build] and is immutable afterwards. Validation is structural only: unit IDs
// must be unique and every stream must reference units present in the sheet.
// Cycle handling is a traversal concern and is deliberately not validated here;
// see the sfiles package.
//
// Declaration order is semantically meaningful: the order of units decides the
// order of traversal roots, and the order of streams decides which outgoing
// edge of a unit continues the main chain. Both orders are preserved exactly
// as supplied.
package flowsheet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUnitID is returned by [Build] when a unit has an empty ID.
	// All units must have non-empty identifiers.
	ErrInvalidUnitID = errors.New("unit ID must not be empty")

	// ErrDuplicateUnitID is returned by [Build] when two units share an ID.
	// Unit IDs must be unique within a flowsheet.
	ErrDuplicateUnitID = errors.New("duplicate unit ID")

	// ErrDanglingStream is returned by [Build] when a stream references a
	// unit ID that is not present in the unit list.
	ErrDanglingStream = errors.New("stream references unknown unit")

	// ErrNoEntryPoint is returned by the encoder when a non-empty flowsheet
	// has no unit with zero incoming streams, i.e. the graph is fully cyclic
	// and traversal has nowhere to start.
	ErrNoEntryPoint = errors.New("no entry point: every unit has an incoming stream")
)

// Metadata stores arbitrary key-value pairs attached to units, such as
// drawing positions extracted from a diagram. The encoder never interprets it.
type Metadata map[string]any

// Unit is a process node: a piece of equipment or a boundary (feed/product).
type Unit struct {
	ID   string   // Unique identifier within the flowsheet
	Kind Kind     // Semantic unit type; KindUnknown for unrecognized equipment
	Meta Metadata // Opaque metadata (never nil after Build)
}

// Stream is a directed edge carrying material or energy between two units.
// The name is used for labels and diagnostics only, never for topology.
type Stream struct {
	Source string // Source unit ID
	Target string // Target unit ID
	Name   string // Display name (e.g. "S1")
}

// Flowsheet is an immutable directed multigraph of units and streams.
// Parallel streams between the same pair of units are permitted.
//
// Use [Build] to construct a validated instance; the zero value is empty but
// safe to read. A Flowsheet is safe for concurrent use once built.
type Flowsheet struct {
	units    []Unit
	streams  []Stream
	byID     map[string]int   // unit ID -> index into units
	outgoing map[string][]int // unit ID -> stream indices in input order
	indegree map[string]int
}

// Build constructs a Flowsheet from the given units and streams.
//
// It returns ErrDuplicateUnitID if two units share an ID, ErrInvalidUnitID if
// a unit ID is empty, and ErrDanglingStream if a stream endpoint names a unit
// absent from units. Errors are wrapped with the offending ID. No other
// validation occurs here. Construction is O(U+S).
//
// The input slices are copied; later mutation of the arguments does not
// affect the returned Flowsheet.
func Build(units []Unit, streams []Stream) (*Flowsheet, error) {
	fs := &Flowsheet{
		units:    make([]Unit, len(units)),
		streams:  make([]Stream, len(streams)),
		byID:     make(map[string]int, len(units)),
		outgoing: make(map[string][]int, len(units)),
		indegree: make(map[string]int, len(units)),
	}
	copy(fs.units, units)
	copy(fs.streams, streams)

	for i := range fs.units {
		u := &fs.units[i]
		if u.ID == "" {
			return nil, ErrInvalidUnitID
		}
		if _, exists := fs.byID[u.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUnitID, u.ID)
		}
		if u.Meta == nil {
			u.Meta = Metadata{}
		}
		fs.byID[u.ID] = i
	}

	for i, s := range fs.streams {
		if _, ok := fs.byID[s.Source]; !ok {
			return nil, fmt.Errorf("%w: %s (source of stream %q)", ErrDanglingStream, s.Source, s.Name)
		}
		if _, ok := fs.byID[s.Target]; !ok {
			return nil, fmt.Errorf("%w: %s (target of stream %q)", ErrDanglingStream, s.Target, s.Name)
		}
		fs.outgoing[s.Source] = append(fs.outgoing[s.Source], i)
		fs.indegree[s.Target]++
	}

	return fs, nil
}

// Units returns the units in declaration order.
// The returned slice must not be modified.
func (f *Flowsheet) Units() []Unit { return f.units }

// Streams returns the streams in declaration order.
// The returned slice must not be modified.
func (f *Flowsheet) Streams() []Stream { return f.streams }

// UnitCount returns the number of units.
func (f *Flowsheet) UnitCount() int { return len(f.units) }

// StreamCount returns the number of streams.
func (f *Flowsheet) StreamCount() int { return len(f.streams) }

// Unit returns the unit with the given ID and true, or a zero Unit and false.
func (f *Flowsheet) Unit(id string) (Unit, bool) {
	i, ok := f.byID[id]
	if !ok {
		return Unit{}, false
	}
	return f.units[i], true
}

// Outgoing returns the streams leaving the unit, in declaration order.
// Returns nil if the unit has no outgoing streams or doesn't exist.
func (f *Flowsheet) Outgoing(id string) []Stream {
	idxs := f.outgoing[id]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Stream, len(idxs))
	for i, si := range idxs {
		out[i] = f.streams[si]
	}
	return out
}

// InDegree returns the number of incoming streams of the unit.
// Returns 0 if the unit doesn't exist.
func (f *Flowsheet) InDegree(id string) int { return f.indegree[id] }

// OutDegree returns the number of outgoing streams of the unit.
// Returns 0 if the unit doesn't exist.
func (f *Flowsheet) OutDegree(id string) int { return len(f.outgoing[id]) }

// Roots returns the units with no incoming streams, in declaration order.
// These are the traversal entry points (typically feeds). Returns nil for an
// empty flowsheet.
func (f *Flowsheet) Roots() []Unit {
	var roots []Unit
	for _, u := range f.units {
		if f.indegree[u.ID] == 0 {
			roots = append(roots, u)
		}
	}
	return roots
}
