// Package render turns normalized layout trees into image bytes.
//
// # Overview
//
// Rendering happens in two stages:
//
//   - [Compose] lays out a [template.Node] tree with a small flexbox model
//     and writes it as an SVG document
//   - [Rasterizer] converts SVG bytes to PNG at a scale factor
//
// # Layout model
//
// The layout engine supports the subset of flexbox the built-in templates
// use: row and column direction, center/start/end/space-between main-axis
// distribution, cross-axis alignment, percentage and pixel lengths, padding
// and gaps. Text runs are measured with a per-rune width approximation; CJK
// glyphs count as a full em, Latin glyphs a little over half.
//
// # Format conversion
//
// [RsvgRasterizer] shells out to the external rsvg-convert tool (from
// librsvg) for PNG output, so no image codec is linked into the binary.
//
//	svg, err := render.Compose(node, 500, 212)
//	png, err := rasterizer.ToPNG(ctx, svg, 2.0) // 2x scale
package render
