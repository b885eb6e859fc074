package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/dv/units"
	"github.com/teranos/semval/errors"
)

// UnitsCmd prints the conversion table of a property
var UnitsCmd = &cobra.Command{
	Use:   "units <property>",
	Short: "Show the unit conversion table of a property",
	Long: `Show the units a property accepts, their factor relative to the main
unit and the units shown in long output.

Examples:
  semval units Height`,
	Args: cobra.ExactArgs(1),
	RunE: runUnits,
}

func runUnits(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		p, err := property.Lookup(ctx, rt.store, args[0])
		if err != nil {
			return errors.Wrapf(err, "property %q", args[0])
		}
		table, err := rt.env.Units.Fetch(ctx, p)
		if err != nil {
			return errors.Wrapf(err, "failed to fetch units of %s", p)
		}
		out := cmd.OutOrStdout()
		if !table.HasUnits() {
			fmt.Fprintf(out, "%s declares no units\n", p)
			return nil
		}

		declared, err := property.Texts(ctx, rt.store, p, property.DisplayUnitsMeta)
		if err != nil {
			return err
		}
		shown := make(map[string]bool)
		for _, u := range units.DisplayUnits(table, declared) {
			shown[u] = true
		}

		data := pterm.TableData{{"unit", "factor", "main", "display"}}
		for _, u := range table.Units() {
			factor, _ := table.Factor(u)
			data = append(data, []string{
				u,
				strconv.FormatFloat(factor, 'g', -1, 64),
				mark(u == table.MainUnit()),
				mark(shown[u]),
			})
		}
		rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Wrap(err, "render unit table")
		}
		fmt.Fprintln(out, rendered)
		return nil
	})
}

func mark(b bool) string {
	if b {
		return "✓"
	}
	return ""
}
