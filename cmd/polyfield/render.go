package main

import (
	"github.com/spf13/cobra"

	"polyfield/demo"
	"polyfield/internal/textui"
)

var flagExpand []string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw the demo player",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		player := demo.NewPlayer()

		in := current.inspector(textui.New(cmd.OutOrStdout(), textui.WithLogger(current.logger)))
		for _, path := range flagExpand {
			in.SetExpanded(path, true)
		}

		if err := in.Render(player); err != nil {
			return err
		}

		current.finish(cmd, player, in.Diagnostics())

		return nil
	},
}

func init() {
	renderCmd.Flags().StringSliceVar(&flagExpand, "expand", nil, "field paths to unfold")
}
