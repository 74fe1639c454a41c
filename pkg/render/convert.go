package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/zzaoclub/imgx/pkg/errors"
)

// Rasterizer converts composed SVG bytes into PNG bytes.
type Rasterizer interface {
	ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error)
}

// RsvgRasterizer rasterizes through the external rsvg-convert tool.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RsvgRasterizer struct{}

// ToPNG converts SVG bytes to PNG at the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func (RsvgRasterizer) ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeRasterize,
			"png output requires librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)")
	}

	cmd := exec.CommandContext(ctx, "rsvg-convert", "-f", "png", "-z", fmt.Sprintf("%.2f", scale))
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterize, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
