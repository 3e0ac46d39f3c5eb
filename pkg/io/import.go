package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shikhar5647/sfiles/pkg/flowsheet"
)

type sheet struct {
	Name    string   `json:"name,omitempty"`
	Units   []unit   `json:"units"`
	Streams []stream `json:"streams"`
}

type unit struct {
	ID   string             `json:"id"`
	Type string             `json:"type"`
	Meta flowsheet.Metadata `json:"meta,omitempty"`
}

type stream struct {
	From string `json:"from"`
	To   string `json:"to"`
	Name string `json:"name"`
}

// ReadJSON decodes a JSON flowsheet from r.
//
// Each unit must have an "id"; "type" is a kind label (e.g. "Reactor") and
// unrecognized labels are kept as-is on an Unknown-kind unit. Each stream
// must have "from" and "to" referencing unit IDs and a display "name".
//
// ReadJSON returns an error if the JSON is malformed, a unit ID is empty or
// duplicated, or a stream references an unknown unit. Validation errors wrap
// the flowsheet package sentinels, so errors.Is works against
// [flowsheet.ErrDuplicateUnitID] and [flowsheet.ErrDanglingStream].
//
// ReadJSON does not close r. The returned Flowsheet is independent of r.
func ReadJSON(r io.Reader) (*flowsheet.Flowsheet, error) {
	var data sheet
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	units := make([]flowsheet.Unit, len(data.Units))
	for i, u := range data.Units {
		kind, known := flowsheet.ParseKind(u.Type)
		fu := flowsheet.Unit{ID: u.ID, Kind: kind, Meta: u.Meta}
		if !known && u.Type != "" {
			if fu.Meta == nil {
				fu.Meta = flowsheet.Metadata{}
			}
			fu.Meta[flowsheet.LabelKey] = u.Type
		}
		units[i] = fu
	}

	streams := make([]flowsheet.Stream, len(data.Streams))
	for i, s := range data.Streams {
		streams[i] = flowsheet.Stream{Source: s.From, Target: s.To, Name: s.Name}
	}

	fs, err := flowsheet.Build(units, streams)
	if err != nil {
		return nil, fmt.Errorf("build flowsheet: %w", err)
	}
	return fs, nil
}

// ImportJSON reads a JSON file at path and returns the decoded flowsheet.
// Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*flowsheet.Flowsheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
