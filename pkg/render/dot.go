package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/shikhar5647/sfiles/pkg/flowsheet"
	"github.com/shikhar5647/sfiles/pkg/sfiles"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes the notation token and kind name in node labels.
	// When false, only the unit ID is shown.
	Detailed bool

	// Rankdir sets the Graphviz layout direction. Defaults to "LR", which
	// matches how flowsheets are conventionally drawn (feeds on the left).
	Rankdir string
}

// ToDOT converts a flowsheet to Graphviz DOT format.
// Feeds and products render as ovals at the boundary; process units as boxes.
// Stream names appear as edge labels. The resulting DOT string can be
// rendered with [RenderSVG] or [RenderPNG].
func ToDOT(fs *flowsheet.Flowsheet, opts Options) string {
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph flowsheet {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for _, u := range fs.Units() {
		attrs := fmtAttrs(u, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", u.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, s := range fs.Streams() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", s.Source, s.Target, s.Name)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(u flowsheet.Unit, detailed bool) []string {
	label := u.ID
	if detailed {
		label = fmt.Sprintf("%s\n%s: %s", u.ID, sfiles.TokenFor(u.Kind), u.Kind)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch u.Kind {
	case flowsheet.KindFeed, flowsheet.KindProduct:
		attrs = append(attrs, "shape=oval", "fillcolor=lightgrey")
	case flowsheet.KindUnknown:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
