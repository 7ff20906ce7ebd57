package main

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"polyfield/demo"
)

// demoInterfaces are the interface types declared by the demo.
var demoInterfaces = []reflect.Type{
	reflect.TypeFor[demo.Person](),
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the variants offered for the demo interfaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		for _, t := range demoInterfaces {
			fmt.Fprintf(out, "%s:\n", t)

			for _, v := range current.catalog.Resolve(t) {
				how := "zero value"
				if v.Factory != nil {
					how = "factory"
				}

				fmt.Fprintf(out, "  %s (%s, %s)\n", v.Name, v.Type, how)
			}
		}

		return nil
	},
}
