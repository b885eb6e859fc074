// Package commands implements the semval CLI.
package commands

import (
	"context"
	"database/sql"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/teranos/semval/am"
	"github.com/teranos/semval/db"
	"github.com/teranos/semval/dv"
	"github.com/teranos/semval/dv/cache"
	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/parser"
	"github.com/teranos/semval/dv/storage"
	"github.com/teranos/semval/errors"
	"github.com/teranos/semval/logger"
)

var (
	dbPathFlag  string
	verboseFlag int
)

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Database path (default: database.path from config)")
	root.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Increase output verbosity (-v for debug)")
}

// Initialize configures the global logger from config and flags.
func Initialize(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	level := logger.LevelForVerbosity(verboseFlag)
	if verboseFlag == 0 && cfg.Log.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return errors.Wrapf(err, "log.level %q", cfg.Log.Level)
		}
		level = parsed
	}
	if err := logger.InitializeWithLevel(cfg.Log.JSON, level); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// runtime is the type system wired over the configured database.
type runtime struct {
	cfg   *am.Config
	db    *sql.DB
	store *storage.SQLStore
	cache cache.Store
	env   *dv.Env
}

func openRuntime(cfg *am.Config) (*runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	path := dbPathFlag
	if path == "" {
		path = cfg.GetDatabasePath()
	}
	log := logger.ComponentLogger("db")
	database, err := db.OpenWithMigrations(path, log)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}

	rt := &runtime{cfg: cfg, db: database, store: storage.NewSQLStore(database, logger.ComponentLogger("storage"))}
	if err := rt.wire(); err != nil {
		database.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *runtime) wire() error {
	switch rt.cfg.Cache.Backend {
	case am.CacheSQLite:
		rt.cache = storage.NewSQLCache(rt.db)
	default:
		opts := []cache.Option{cache.WithSize(rt.cfg.Cache.Size)}
		if rt.cfg.Cache.Metrics {
			opts = append(opts, cache.WithMetrics(prometheus.DefaultRegisterer, "cli"))
		}
		mem, err := cache.NewMemory(opts...)
		if err != nil {
			return errors.Wrap(err, "failed to create cache")
		}
		rt.cache = mem
	}

	envOpts := []dv.EnvOption{
		dv.WithConfig(rt.cfg.ToEnvConfig()),
		dv.WithLogger(logger.ComponentLogger("dv")),
	}
	if path := rt.cfg.Values.VocabularyFile; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "open vocabulary file %s", path)
		}
		defer f.Close()
		vocab, err := parser.LoadVocabularies(f)
		if err != nil {
			return errors.Wrapf(err, "load vocabularies from %s", path)
		}
		envOpts = append(envOpts, dv.WithVocabularies(vocab))
	}
	if path := rt.cfg.Values.PatternFile; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "read pattern file %s", path)
		}
		envOpts = append(envOpts, dv.WithPatterns(parser.ParsePatternCatalog(string(data))))
	}

	rt.env = dv.NewEnv(rt.store, rt.cache, envOpts...)
	return nil
}

func (rt *runtime) Close() error {
	return rt.db.Close()
}

// subject parses an entity title the way page values are parsed.
func (rt *runtime) subject(ctx context.Context, title string) (item.EntityRef, error) {
	if title == "" {
		return item.EntityRef{}, nil
	}
	v := rt.env.Factory().NewValueByType(dv.TypePage)
	v.Parse(ctx, title)
	if !v.IsValid() {
		return item.EntityRef{}, rt.invalid(title, v)
	}
	return v.Item().(item.EntityRef), nil
}

// withRuntime loads config, opens the runtime and runs fn.
func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	rt, err := openRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(logger.WithComponent(ctx, cmd.Name()), rt)
}
