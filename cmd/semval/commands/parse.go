package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/semval/dv"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/errors"
)

// ParseCmd parses a value for a property and prints it
var ParseCmd = &cobra.Command{
	Use:   "parse <property> <text>",
	Short: "Parse, validate and format a value",
	Long: `Parse text as a value of the property's declared type, run the
property's constraints and print the value in the requested mode.

Modes: short-plain, short-rich, long-plain, long-rich, value

Examples:
  semval parse Height "1.80 m"
  semval parse Height "180 cm" --mode long-plain --output m
  semval parse ISBN 978-3-16 --subject "The Book" --save`,
	Args: cobra.ExactArgs(2),
	RunE: runParse,
}

var (
	parseSubject string
	parseMode    string
	parseOutput  string
	parseCaption string
	parseSave    bool
	parseDetails bool
)

func init() {
	ParseCmd.Flags().StringVar(&parseSubject, "subject", "", "Entity the value is annotated on")
	ParseCmd.Flags().StringVar(&parseMode, "mode", dv.ShortPlain.String(), "Output mode")
	ParseCmd.Flags().StringVar(&parseOutput, "output", "", `Output format ("-", "-u", "-n" or a unit)`)
	ParseCmd.Flags().StringVar(&parseCaption, "caption", "", "Caption shown in short output")
	ParseCmd.Flags().BoolVar(&parseSave, "save", false, "Store the value on --subject when valid")
	ParseCmd.Flags().BoolVar(&parseDetails, "details", false, "Print type, item and sort key")
}

func runParse(cmd *cobra.Command, args []string) error {
	mode, ok := dv.ParseMode(parseMode)
	if !ok {
		return errors.Newf("unknown mode %q", parseMode)
	}
	if parseSave && parseSubject == "" {
		return errors.New("--save requires --subject")
	}

	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		p, err := property.Lookup(ctx, rt.store, args[0])
		if err != nil {
			return errors.Wrapf(err, "property %q", args[0])
		}
		subject, err := rt.subject(ctx, parseSubject)
		if err != nil {
			return err
		}

		v := rt.env.Factory().NewValueByProperty(ctx, p, args[1], parseCaption, subject)
		if !v.IsValid() {
			return rt.invalid(args[1], v)
		}
		if parseOutput != "" {
			v.SetOutputFormat(parseOutput)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, rt.env.Dispatcher().Format(ctx, v, mode))
		if parseDetails {
			table, err := pterm.DefaultTable.WithData(pterm.TableData{
				{"type", v.TypeID()},
				{"kind", v.Item().Kind().String()},
				{"item", v.Item().Serialize()},
				{"sort key", v.Item().SortKey()},
			}).Srender()
			if err != nil {
				return errors.Wrap(err, "render details")
			}
			fmt.Fprintln(out, table)
		}

		if parseSave {
			id, err := rt.store.Add(ctx, subject, p.Key, v.Item())
			if err != nil {
				return errors.Wrap(err, "failed to save value")
			}
			fmt.Fprintf(out, "%s saved %s on %s (%s)\n", pterm.Green("✓"), p, subject.Title(), id)
		}
		return nil
	})
}
