package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zzaoclub/imgx/pkg/imagegen"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string   // output file path
	format string   // "svg" or "png"
	scale  string   // raster scale factor
	styles []string // raw key=value style overrides
}

// renderCommand creates the render command for one-shot image generation.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <preset> [text...]",
		Short: "Render a single image to a file",
		Long: `Render generates one image from a preset and writes it to a file.

Text arguments map onto the preset's content keys in order; for plain text
presets, "+" inside an argument starts a new line and [icon:ref] and
*accented* spans use the same syntax as render URLs.

Example:

  imgx render 001 "Build*Fast*" --style bgColor=1e40af -o cover.svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], args[1:], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default imgx-<preset>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg or png")
	cmd.Flags().StringVar(&opts.scale, "scale", "", "raster scale factor for png, 0.5 to 5")
	cmd.Flags().StringArrayVarP(&opts.styles, "style", "s", nil, "style override key=value (repeatable)")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, presetCode string, segments []string, opts *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	styleProps, err := parseStyleFlags(opts.styles)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	gen, _, closeAll, err := c.buildGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering preset %s...", presetCode))
	spinner.Start()

	res, err := gen.Generate(ctx, imagegen.Request{
		PresetCode: presetCode,
		Segments:   segments,
		StyleProps: styleProps,
		Format:     opts.format,
		Scale:      opts.scale,
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	spinner.Stop()

	if res.Placeholder {
		printWarning("Preset %q not found; wrote placeholder image", presetCode)
	}

	out := opts.output
	if out == "" {
		ext := "png"
		if res.ContentType == "image/svg+xml" {
			ext = "svg"
		}
		out = fmt.Sprintf("imgx-%s.%s", presetCode, ext)
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Rendered %s (%d bytes)", presetCode, len(res.Data))
	printFile(out)
	return nil
}

// parseStyleFlags parses repeated key=value style flags into a prop map.
func parseStyleFlags(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	props := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid style flag %q (want key=value)", pair)
		}
		props[key] = value
	}
	return props, nil
}
