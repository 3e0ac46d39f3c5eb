package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shikhar5647/sfiles/pkg/flowsheet"
)

// WriteJSON encodes a flowsheet as JSON and writes it to w.
// Unit and stream order match the flowsheet's declaration order, so the
// output can be re-imported with [ReadJSON] without changing encode results.
func WriteJSON(fs *flowsheet.Flowsheet, w io.Writer) error {
	out := sheet{
		Units:   make([]unit, fs.UnitCount()),
		Streams: make([]stream, fs.StreamCount()),
	}

	for i, u := range fs.Units() {
		out.Units[i] = unit{ID: u.ID, Type: typeLabel(u), Meta: publicMeta(u.Meta)}
	}
	for i, s := range fs.Streams() {
		out.Streams[i] = stream{From: s.Source, To: s.Target, Name: s.Name}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a flowsheet to a JSON file at path.
func ExportJSON(fs *flowsheet.Flowsheet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(fs, f)
}

// WriteNotation writes an SFILES string to w with a comment header naming
// the flowsheet.
func WriteNotation(w io.Writer, name, notation string) error {
	if _, err := fmt.Fprintf(w, "# SFILES representation for %s\n\n%s\n", name, notation); err != nil {
		return fmt.Errorf("write notation: %w", err)
	}
	return nil
}

// ExportNotation writes an SFILES string to a text file at path.
func ExportNotation(path, name, notation string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteNotation(f, name, notation)
}

// WriteListing writes a human-readable unit and stream listing to w.
// This accompanies the notation file for readers who want the topology
// spelled out.
func WriteListing(w io.Writer, name string, fs *flowsheet.Flowsheet) error {
	if _, err := fmt.Fprintf(w, "# Flowsheet data for %s\n\nUnits:\n", name); err != nil {
		return err
	}
	for _, u := range fs.Units() {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", u.ID, typeLabel(u)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "\nStreams:\n"); err != nil {
		return err
	}
	for _, s := range fs.Streams() {
		if _, err := fmt.Fprintf(w, "  %s: %s -> %s\n", s.Name, s.Source, s.Target); err != nil {
			return err
		}
	}
	return nil
}

// ExportListing writes a unit/stream listing to a text file at path.
func ExportListing(path, name string, fs *flowsheet.Flowsheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteListing(f, name, fs)
}

// typeLabel returns the exported type label for a unit: the raw label for
// unknown kinds (round-trip fidelity), otherwise the canonical kind name.
func typeLabel(u flowsheet.Unit) string {
	if u.Kind == flowsheet.KindUnknown {
		if label, ok := u.Meta[flowsheet.LabelKey].(string); ok {
			return label
		}
	}
	return u.Kind.String()
}

// publicMeta strips internal keys from metadata for export.
// Returns nil if nothing remains, keeping the JSON compact.
func publicMeta(m flowsheet.Metadata) flowsheet.Metadata {
	if len(m) == 0 {
		return nil
	}
	out := make(flowsheet.Metadata, len(m))
	for k, v := range m {
		if k == flowsheet.LabelKey {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
