package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/semval/am"
	"github.com/teranos/semval/db"
	"github.com/teranos/semval/dv"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/errors"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// cli runs commands against one temporary database and an isolated config.
type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	am.Reset()
	t.Cleanup(am.Reset)
	return &cli{t: t, db: filepath.Join(home, "semval.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	dbPathFlag, verboseFlag = "", 0
	parseSubject, parseMode, parseOutput, parseCaption = "", dv.ShortPlain.String(), "", ""
	parseSave, parseDetails = false, false
	configFormat = am.FormatTOML

	root := &cobra.Command{Use: "semval", SilenceUsage: true, SilenceErrors: true, PersistentPreRunE: Initialize}
	AddGlobalFlags(root)
	root.AddCommand(AmCmd, DeclareCmd, ParseCmd, RemoveCmd, TypesCmd, UnitsCmd, VersionCmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--db", c.db))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) must(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "semval %v", args)
	return out
}

func TestDeclareAndParse(t *testing.T) {
	c := newCLI(t)
	c.must("declare", "Height", "type", "Quantity")
	c.must("declare", "Height", "conversion", "1 m", "100 cm")

	assert.Equal(t, "180 cm\n", c.must("parse", "Height", "180 cm"))
	assert.Equal(t, "180 cm (1.8 m)\n", c.must("parse", "Height", "180 cm", "--mode", "long-plain"))
	assert.Equal(t, "1.8 m\n", c.must("parse", "Height", "180 cm", "--output", "m"))

	out := c.must("parse", "Height", "2 m", "--details")
	assert.Contains(t, out, "_qty")
	assert.Contains(t, out, "number")

	units := c.must("units", "Height")
	assert.Contains(t, units, "cm")
	assert.Contains(t, units, "100")

	t.Run("invalid value", func(t *testing.T) {
		_, err := c.run("parse", "Height", "tall")
		var verr *valueError
		require.True(t, errors.As(err, &verr), "got %v", err)
		assert.Equal(t, []string{msg.NotANumber}, verr.codes)
		assert.Contains(t, RenderError(err), msg.NotANumber)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := c.run("parse", "Height", "1 m", "--mode", "fancy")
		require.Error(t, err)
	})
}

func TestUniquenessAcrossRuns(t *testing.T) {
	c := newCLI(t)
	c.must("declare", "ISBN", "type", "_txt")
	c.must("declare", "ISBN", "unique", "true")

	out := c.must("parse", "ISBN", "978-3-16", "--subject", "Alice", "--save")
	assert.Contains(t, out, "saved ISBN on Alice")

	_, err := c.run("parse", "ISBN", "978-3-16", "--subject", "Bob")
	var verr *valueError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, []string{msg.UniquenessViolation}, verr.codes)

	out = c.must("remove", "Alice")
	assert.Contains(t, out, "removed 1 facts of Alice")

	c.must("parse", "ISBN", "978-3-16", "--subject", "Bob")
}

func TestDeclareErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("declare", "Height", "colour", "red")
	assert.ErrorContains(t, err, "unknown meta")

	_, err = c.run("declare", "Height", "type", "Fancy")
	assert.True(t, errors.Is(err, errors.ErrUnknownType), "got %v", err)

	_, err = c.run("declare", "ISBN", "unique", "maybe")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)

	_, err = c.run("parse", "ISBN", "x", "--save")
	assert.ErrorContains(t, err, "--subject")
}

func TestTypes(t *testing.T) {
	c := newCLI(t)
	out := c.must("types")
	for _, id := range dv.NewRegistry().IDs() {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Monolingual text")
}

func TestAm(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.must("am", "show", "--format", "json"), `"database"`)
	assert.Contains(t, c.must("am", "show"), "[values]")
	assert.Equal(t, "en\n", c.must("am", "get", "values.language"))
	assert.Contains(t, c.must("am", "validate"), "Configuration is valid")

	_, err := c.run("am", "get", "nope.missing")
	assert.ErrorContains(t, err, "not found")

	path := filepath.Join(t.TempDir(), "semval.toml")
	c.must("am", "init", path)
	cfg, err := am.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, am.DefaultDatabasePath, cfg.Database.Path)
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.must("version"), "semval dev")
	assert.Contains(t, c.must("version", "--json"), `"go_version"`)
}

func TestRenderError_ClosedDatabase(t *testing.T) {
	err := errors.Wrap(db.MarkClosed(errors.New("sql: database is closed")), "query values of Height")

	out := RenderError(err)
	assert.Contains(t, out, "Error: query values of Height: database is closed")
	assert.Contains(t, out, "hint: the database was closed")
}
