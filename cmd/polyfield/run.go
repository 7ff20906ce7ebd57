package main

import (
	"io"

	"github.com/spf13/cobra"

	"polyfield/demo"
	"polyfield/internal/diagnostic"
	"polyfield/internal/inspect"
	"polyfield/internal/textui"
)

// collector keeps the diagnostics of every pass, not only the last one.
type collector struct {
	*inspect.Inspector
	all diagnostic.Diagnostics
}

func (c *collector) Render(root any) error {
	err := c.Inspector.Render(root)
	c.all.Merge(c.Inspector.Diagnostics())

	return err
}

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Apply a script to the demo player and draw the result",
	Long: `run applies the steps of a YAML script to a fresh demo player, one render
pass per step, then draws the final state. Failing steps are reported after
the drawing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := textui.LoadScript(args[0])
		if err != nil {
			return err
		}

		player := demo.NewPlayer()

		surface := textui.New(io.Discard, textui.WithLogger(current.logger))
		in := &collector{Inspector: current.inspector(surface)}

		runErr := textui.Run(in, surface, player, script)

		surface.SetOutput(cmd.OutOrStdout())
		if err := in.Render(player); err != nil {
			return err
		}

		current.finish(cmd, player, in.all)

		return runErr
	},
}
