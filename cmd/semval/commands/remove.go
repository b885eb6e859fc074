package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/semval/errors"
)

// RemoveCmd deletes the facts of an entity
var RemoveCmd = &cobra.Command{
	Use:   "remove <entity>",
	Short: "Remove the facts of an entity",
	Long: `Remove every fact stored on an entity and its sub-objects, and drop
the cached constraint results that depend on it.

Examples:
  semval remove "The Book"`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		subject, err := rt.subject(ctx, args[0])
		if err != nil {
			return err
		}
		removed, err := rt.store.Remove(ctx, subject)
		if err != nil {
			return errors.Wrapf(err, "failed to remove %s", subject.Title())
		}
		purged, err := rt.env.Pipeline().Invalidate(ctx, subject)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s removed %d facts of %s, purged %d cache entries\n",
			pterm.Green("✓"), removed, subject.Title(), purged)
		return nil
	})
}
