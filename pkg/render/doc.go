// Package render draws flowsheets as node-link diagrams.
//
// [ToDOT] converts a flowsheet to Graphviz DOT with unit kinds as shapes and
// stream names as edge labels; [RenderSVG] and [RenderPNG] rasterize the DOT
// through Graphviz. Rendering is a diagnostic aid for eyeballing the topology
// that the SFILES notation encodes; it has no effect on encoding.
package render
