package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/semval/dv"
	"github.com/teranos/semval/errors"
)

// TypesCmd lists the registered value types
var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered value types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rendered, err := typeTable(dv.NewRegistry())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func typeTable(r *dv.Registry) (string, error) {
	data := pterm.TableData{{"id", "label", "item", "aliases"}}
	for _, id := range r.IDs() {
		e := r.Lookup(id)
		data = append(data, []string{e.ID, e.Label, e.Kind.String(), strings.Join(e.Aliases, ", ")})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, "render type table")
	}
	return out, nil
}
