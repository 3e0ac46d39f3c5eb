// Package io reads and writes flowsheets and encoding results.
//
// Flowsheets are exchanged as JSON objects with "units" and "streams" arrays:
//
//	{
//	  "units": [
//	    {"id": "F-101", "type": "Feed"},
//	    {"id": "R-101", "type": "Reactor", "meta": {"position": [200, 200]}}
//	  ],
//	  "streams": [
//	    {"from": "F-101", "to": "R-101", "name": "S1"}
//	  ]
//	}
//
// Array order is semantically meaningful and preserved on round trips: unit
// order decides traversal roots and stream order decides main-chain versus
// branch selection, so import → encode → export is deterministic.
//
// Unknown "type" labels are accepted: the unit gets the Unknown kind with the
// raw label preserved in its metadata, and renders with the generic UNIT
// token.
//
// Results are written as a plain-text SFILES file with a comment header, and
// optionally a human-readable listing of units and streams alongside it.
package io
