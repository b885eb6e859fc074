package dv

import (
	"go.uber.org/zap"

	"github.com/teranos/semval/dv/cache"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/dv/parser"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/dv/units"
	"github.com/teranos/semval/logger"
)

// Config holds the behaviour switches of the type system.
type Config struct {
	// StrictLanguageCode requires a valid language code on monolingual text.
	StrictLanguageCode bool
	// AllowsPattern enables the allowed-pattern constraint.
	AllowsPattern bool
	// Precision is the maximum number of fraction digits in numeric output.
	Precision int
	// Language is the content language used for number grouping and
	// messages.
	Language string
	// URISchemes lists the schemes accepted by URL values.
	URISchemes []string
	// TrueWords and FalseWords extend the built-in boolean vocabulary.
	TrueWords  []string
	FalseWords []string
	// MaxShortLength abbreviates text in short rich output. 0 disables it.
	MaxShortLength int
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		AllowsPattern:  true,
		Precision:      6,
		Language:       "en",
		URISchemes:     []string{"http", "https", "ftp", "ftps", "mailto", "news", "irc", "gopher", "file", "urn", "sftp", "ssh", "git", "svn"},
		MaxShortLength: 80,
	}
}

// Env carries everything values need beyond their own state. It is built
// once and shared read-only by every value it creates.
type Env struct {
	Registry     *Registry
	Store        property.Store
	Cache        cache.Store
	Units        units.Source
	Vocabularies parser.VocabularyLookup
	Patterns     parser.PatternCatalog
	Localizer    msg.Localizer
	Logger       *zap.SugaredLogger
	Config       Config

	factory    *Factory
	pipeline   *Pipeline
	dispatcher *Dispatcher
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) EnvOption {
	return func(e *Env) { e.Config = cfg }
}

// WithLogger sets the logger used by the type system.
func WithLogger(l *zap.SugaredLogger) EnvOption {
	return func(e *Env) {
		if l != nil {
			e.Logger = l
		}
	}
}

// WithVocabularies sets the import vocabularies.
func WithVocabularies(v parser.VocabularyLookup) EnvOption {
	return func(e *Env) { e.Vocabularies = v }
}

// WithPatterns sets the allowed-pattern catalog.
func WithPatterns(p parser.PatternCatalog) EnvOption {
	return func(e *Env) { e.Patterns = p }
}

// WithLocalizer sets the message localizer.
func WithLocalizer(l msg.Localizer) EnvOption {
	return func(e *Env) { e.Localizer = l }
}

// WithUnits replaces the cached unit fetcher.
func WithUnits(s units.Source) EnvOption {
	return func(e *Env) { e.Units = s }
}

// NewEnv wires a type system over store and cacheStore.
func NewEnv(store property.Store, cacheStore cache.Store, opts ...EnvOption) *Env {
	e := &Env{
		Registry:     NewRegistry(),
		Store:        store,
		Cache:        cacheStore,
		Vocabularies: parser.Vocabularies{},
		Patterns:     parser.Patterns{},
		Localizer:    msg.NewCatalog(),
		Logger:       logger.ComponentLogger("dv"),
		Config:       DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Cache == nil {
		// NewMemory only fails on a non-positive size.
		mem, _ := cache.NewMemory()
		e.Cache = mem
	}
	if e.Units == nil {
		e.Units = units.NewCachedFetcher(units.NewFetcher(store, e.Logger), e.Cache, e.Logger)
	}
	e.factory = &Factory{env: e}
	e.pipeline = NewPipeline(e)
	e.dispatcher = NewDispatcher(e)
	return e
}

// Factory returns the value factory bound to e.
func (e *Env) Factory() *Factory { return e.factory }

// Pipeline returns the constraint pipeline bound to e.
func (e *Env) Pipeline() *Pipeline { return e.pipeline }

// Dispatcher returns the formatter dispatch bound to e.
func (e *Env) Dispatcher() *Dispatcher { return e.dispatcher }
