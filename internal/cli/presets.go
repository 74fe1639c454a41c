package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zzaoclub/imgx/pkg/preset"
)

// presetsCommand creates the presets inspection command.
func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect the configured presets",
	}

	cmd.AddCommand(c.presetsListCommand())
	cmd.AddCommand(c.presetsShowCommand())

	return cmd
}

// presetsListCommand creates the "presets list" subcommand.
func (c *CLI) presetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeAll, err := c.openPresetStore(cmd)
			if err != nil {
				return err
			}
			defer closeAll()

			all, err := store.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				printInfo("No presets found")
				return nil
			}

			for _, p := range all {
				fmt.Println(StyleTitle.Render(p.Code) + "  " + StyleValue.Render(p.Name))
				printDetail("%s · %dx%d · keys: %s", p.Template, p.Width, p.Height, strings.Join(p.ContentKeys, ", "))
			}
			printNewline()
			printInfo("%d presets", len(all))
			return nil
		},
	}
}

// presetsShowCommand creates the "presets show" subcommand.
func (c *CLI) presetsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show one preset in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeAll, err := c.openPresetStore(cmd)
			if err != nil {
				return err
			}
			defer closeAll()

			p, err := store.GetByCode(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printKeyValue("Code", p.Code)
			printKeyValue("Name", p.Name)
			if p.Description != "" {
				printKeyValue("Description", p.Description)
			}
			printKeyValue("Template", p.Template)
			printKeyValue("Size", fmt.Sprintf("%dx%d", p.Width, p.Height))
			printKeyValue("Content", strings.Join(p.ContentKeys, ", "))

			if len(p.StyleProps) > 0 {
				printNewline()
				printInfo("Default style")
				for key, value := range p.StyleProps {
					printDetail("%s = %v", key, value)
				}
			}
			if len(p.PropsSchema) > 0 {
				printNewline()
				printInfo("Customizable properties")
				for _, spec := range p.PropsSchema {
					label := spec.Label
					if label == "" {
						label = spec.Key
					}
					printDetail("%s (%s): %s", spec.Key, spec.Type, label)
				}
			}
			return nil
		},
	}
}

// openPresetStore builds just the preset store from config, for commands
// that don't render.
func (c *CLI) openPresetStore(cmd *cobra.Command) (preset.Store, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	var closers []func()
	store, err := c.newPresetStore(cmd.Context(), cfg, &closers)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}
