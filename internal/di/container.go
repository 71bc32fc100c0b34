package di

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	buildcmd "github.com/goliatone/go-contentgraph/internal/commands/build"
	"github.com/goliatone/go-contentgraph/internal/digest"
	"github.com/goliatone/go-contentgraph/internal/graph"
	"github.com/goliatone/go-contentgraph/internal/identity"
	"github.com/goliatone/go-contentgraph/internal/logging"
	"github.com/goliatone/go-contentgraph/internal/logging/console"
	"github.com/goliatone/go-contentgraph/internal/logging/gologger"
	"github.com/goliatone/go-contentgraph/internal/runtimeconfig"
	"github.com/goliatone/go-contentgraph/internal/source"
	"github.com/goliatone/go-contentgraph/internal/store"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

// Container wires the graph builder, its content sources and its node store.
type Container struct {
	Config runtimeconfig.Config

	fsys           fs.FS
	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	registry *prom.Registry
	store    interfaces.NodeStore
	ids      interfaces.IDSynthesizer
	digester interfaces.Digester

	loader  *source.Loader
	builder *graph.Builder
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithFS replaces the content filesystem. Defaults to os.DirFS(ContentDir).
func WithFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.fsys = fsys
	}
}

func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies the database used by the bun storage provider. The
// caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache used in front of the bun store.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithStore bypasses the configured storage provider.
func WithStore(s interfaces.NodeStore) Option {
	return func(c *Container) {
		c.store = s
	}
}

// WithMetricsRegistry enables registration metrics on reg.
func WithMetricsRegistry(reg *prom.Registry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

func WithIDSynthesizer(ids interfaces.IDSynthesizer) Option {
	return func(c *Container) {
		c.ids = ids
	}
}

func WithDigester(d interfaces.Digester) Option {
	return func(c *Container) {
		c.digester = d
	}
}

// NewContainer validates cfg and wires every collaborator.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStore(); err != nil {
		return nil, err
	}
	c.configureMetrics()
	c.configureBuilder()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureStore() error {
	if c.store != nil {
		return nil
	}
	storage := c.Config.Storage
	if strings.ToLower(strings.TrimSpace(storage.Provider)) != runtimeconfig.StorageProviderBun {
		c.store = store.NewMemoryStore()
		return nil
	}

	if c.bunDB == nil {
		db, err := store.OpenDB(strings.ToLower(strings.TrimSpace(storage.Driver)), storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if err := store.EnsureSchema(context.Background(), c.bunDB); err != nil {
		return fmt.Errorf("contentgraph: ensure schema: %w", err)
	}

	c.configureCacheDefaults()
	c.store = store.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
	logging.StoreLogger(c.loggerProvider).Debug("store.bun.ready",
		"driver", storage.Driver,
		"cache", c.cacheService != nil,
	)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.cacheService != nil {
		return
	}
	cfg := repocache.DefaultConfig()
	if c.Config.Cache.DefaultTTL > 0 {
		cfg.TTL = c.Config.Cache.DefaultTTL
	}
	service, err := repocache.NewCacheService(cfg)
	if err != nil {
		logging.StoreLogger(c.loggerProvider).Warn("store.cache.disabled", "error", err)
		return
	}
	c.cacheService = service
	c.keySerializer = repocache.NewDefaultKeySerializer()
}

func (c *Container) configureMetrics() {
	if c.registry == nil && c.Config.Metrics.Enabled {
		c.registry = prom.NewRegistry()
	}
	if c.registry != nil {
		c.store = store.Instrument(c.store, store.NewSinkMetrics(c.registry))
	}
}

func (c *Container) configureBuilder() {
	if c.fsys == nil {
		c.fsys = os.DirFS(c.Config.ContentDir)
	}
	if c.ids == nil {
		c.ids = identity.Synthesizer{}
	}
	if c.digester == nil {
		c.digester = digest.SHA256{}
	}

	sources := make([]source.Source, 0, len(c.Config.Sources))
	for _, src := range c.Config.Sources {
		sources = append(sources, source.Source{Category: src.Category, Root: src.Path})
	}
	c.loader = source.NewLoader(source.LoaderConfig{
		FS:      c.fsys,
		Sources: sources,
		Logger:  logging.SourceLogger(c.loggerProvider),
	})
	c.builder = graph.NewBuilder(graph.Config{
		Sink:   c.store,
		IDs:    c.ids,
		Digest: c.digester,
		FS:     c.loader.FileSystem(),
		Logger: logging.GraphLogger(c.loggerProvider),
	})
}

// Build maps every source file into the store, then resolves the
// cross-references of the stored graph.
func (c *Container) Build(ctx context.Context) (*buildcmd.Result, error) {
	loaded, err := c.loader.Load(ctx, c.builder)
	if err != nil {
		return nil, err
	}
	nodes, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &buildcmd.Result{
		Files:    loaded.Files,
		Nodes:    nodes,
		Dangling: store.Resolve(nodes),
	}, nil
}

// BuildGraphHandler returns a command handler bound to this container.
func (c *Container) BuildGraphHandler(onResult func(*buildcmd.Result)) *buildcmd.BuildGraphHandler {
	return buildcmd.NewBuildGraphHandler(buildcmd.HandlerConfig{
		Service:  c,
		Logger:   logging.CommandLogger(c.loggerProvider, "build"),
		OnResult: onResult,
	})
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) Store() interfaces.NodeStore {
	return c.store
}

// MetricsRegistry returns nil when metrics are disabled.
func (c *Container) MetricsRegistry() *prom.Registry {
	return c.registry
}

// Close releases a database opened by the container.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}
