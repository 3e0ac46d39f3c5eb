// Package sfiles encodes process flowsheets into SFILES, a single-line text
// notation for flowsheet topology analogous to line notations for molecular
// graphs.
//
// The encoder is a pure function of its input: [Encode] validates the
// flowsheet's entry points, performs a deterministic depth-first traversal and
// renders the visit events as text. Encoding the same flowsheet twice yields
// byte-identical output, and concurrent calls on distinct flowsheets are safe
// without locking.
//
// # Notation
//
// Units render as TOKEN(id) where TOKEN comes from the unit-kind table (e.g.
// CSTR for reactors, UNIT for unrecognized equipment). A forward stream
// renders as >name> before the unit it leads to. Secondary outgoing streams
// become bracketed branches, streams back to an already-visited unit become
// <id> recycle references, and independent feed trains are joined with commas:
//
//	FEED(F-101)>S1>CSTR(R-101)>S2>SEP(S-101)[>S4>PRODUCT(P-102)]>S3>PRODUCT(P-101)
package sfiles
