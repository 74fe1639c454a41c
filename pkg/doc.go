// Package pkg provides the core libraries for imgx cover-image rendering.
//
// # Overview
//
// Imgx turns a preset code plus URL text and style parameters into a
// finished SVG or PNG image. The pkg directory splits along that flow:
//
//  1. [preset] - preset definitions and stores (JSON directory, MongoDB)
//  2. [content] - the content mini-language ([icon:ref], *accent*, "+" lines)
//  3. [style] - style parameter normalization and resolution
//  4. [colorx] - color math (random palettes, gradients, contrast text)
//  5. [template] - template functions that build the layout node tree
//  6. [render] - flex layout, SVG composition, PNG rasterization
//  7. [imagegen] - orchestration of the whole render
//  8. [icons], [fonts], [cache], [httputil] - supporting infrastructure
//
// # Architecture
//
// The typical data flow through imgx:
//
//	Preset + request parameters
//	         ↓
//	    [style] + [content] (normalize, parse, resolve icons)
//	         ↓
//	    [template] (build the node tree)
//	         ↓
//	    [render] (layout, compose SVG, rasterize)
//	         ↓
//	    SVG/PNG output
//
// # Quick Start
//
// Render one image from a directory of presets:
//
//	import (
//	    "context"
//	    "github.com/zzaoclub/imgx/pkg/imagegen"
//	    "github.com/zzaoclub/imgx/pkg/preset"
//	    "github.com/zzaoclub/imgx/pkg/template"
//	)
//
//	store := preset.NewCached(preset.NewFileStore("presets"))
//	gen := imagegen.New(imagegen.Config{
//	    Presets:   store,
//	    Templates: template.NewAdapter(template.NewRegistry(), nil, nil),
//	})
//	res, err := gen.Generate(context.Background(), imagegen.Request{
//	    PresetCode: "001",
//	    Segments:   []string{"Hello+World"},
//	    Format:     "svg",
//	})
package pkg
