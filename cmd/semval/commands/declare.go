package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/dv/units"
	"github.com/teranos/semval/errors"
)

// metaNames maps the declare command's names to meta properties.
var metaNames = map[string]string{
	"type":           property.TypeMeta,
	"conversion":     property.ConversionMeta,
	"fields":         property.FieldListMeta,
	"allows-value":   property.AllowsValueMeta,
	"allows-pattern": property.AllowsPatternMeta,
	"unique":         property.UniquenessMeta,
	"display-units":  property.DisplayUnitsMeta,
	"imported-from":  property.ImportedFromMeta,
}

func metaNameList() string {
	names := make([]string, 0, len(metaNames))
	for n := range metaNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// DeclareCmd records declarations on a property page
var DeclareCmd = &cobra.Command{
	Use:   "declare <property> <meta> <value>...",
	Short: "Declare type, conversions and constraints of a property",
	Long: `Add declarations to a property.

Meta names: ` + metaNameList() + `

The type may be given by id (_qty) or label (Quantity). "unique" takes
true or false. Declaring conversions or display units drops the cached
conversion table of the property.

Examples:
  semval declare Height type Quantity
  semval declare Height conversion "1 m" "100 cm"
  semval declare Color allows-value red green blue
  semval declare ISBN unique true`,
	Args: cobra.MinimumNArgs(3),
	RunE: runDeclare,
}

func runDeclare(cmd *cobra.Command, args []string) error {
	label, metaName, values := args[0], args[1], args[2:]
	meta, ok := metaNames[metaName]
	if !ok {
		return errors.Newf("unknown meta %q (known: %s)", metaName, metaNameList())
	}

	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		p, err := property.Resolve(label)
		if err != nil {
			return err
		}
		if p.IsPredefined() {
			return errors.Newf("%s is predefined and cannot be declared", p)
		}

		items, err := rt.declarationItems(meta, values)
		if err != nil {
			return err
		}
		if err := rt.store.Declare(ctx, p, meta, items...); err != nil {
			return errors.Wrapf(err, "failed to declare %s of %s", metaName, p)
		}

		if meta == property.ConversionMeta || meta == property.DisplayUnitsMeta {
			if cached, ok := rt.env.Units.(*units.CachedFetcher); ok {
				if err := cached.Invalidate(ctx, p); err != nil {
					return err
				}
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %s\n",
			pterm.Green("✓"), p, metaName, strings.Join(values, ", "))
		return nil
	})
}

func (rt *runtime) declarationItems(meta string, values []string) ([]item.Item, error) {
	items := make([]item.Item, 0, len(values))
	for _, raw := range values {
		switch meta {
		case property.TypeMeta:
			id := raw
			if !rt.env.Registry.Has(id) {
				e, ok := rt.env.Registry.ByLabel(raw)
				if !ok {
					return nil, errors.Wrapf(errors.ErrUnknownType, "%q", raw)
				}
				id = e.ID
			}
			items = append(items, item.Blob{Text: id})
		case property.UniquenessMeta:
			on, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidRequest, "unique takes true or false, got %q", raw)
			}
			items = append(items, item.Boolean{Value: on})
		default:
			items = append(items, item.Blob{Text: raw})
		}
	}
	return items, nil
}
