package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/semval/cmd/semval/commands"
	"github.com/teranos/semval/logger"
)

var rootCmd = &cobra.Command{
	Use:   "semval",
	Short: "semval - typed property values for annotated entities",
	Long: `semval - parse, validate and format typed property values.

Values are parsed against the type declared for their property, checked
against the property's constraints (uniqueness, allowed pattern, allowed
values) and rendered in one of five output modes.

Available commands:
  am       - Manage semval configuration
  declare  - Declare type, conversions and constraints of a property
  parse    - Parse and format a value
  remove   - Remove the facts of an entity
  types    - List the registered value types
  units    - Show the unit conversion table of a property
  version  - Show version information

Examples:
  semval declare Height type Quantity
  semval declare Height conversion "1 m" "100 cm" "3.28084 ft"
  semval parse Height "180 cm" --mode long-plain
  semval am show --format yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: commands.Initialize,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	commands.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.DeclareCmd)
	rootCmd.AddCommand(commands.ParseCmd)
	rootCmd.AddCommand(commands.RemoveCmd)
	rootCmd.AddCommand(commands.TypesCmd)
	rootCmd.AddCommand(commands.UnitsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.RenderError(err))
		os.Exit(1)
	}
}
