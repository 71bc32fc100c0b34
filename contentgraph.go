// Package contentgraph maps a tree of JSON content files (videos, their
// contributions, tracks and chapters) into a linked graph of content nodes.
package contentgraph

import (
	"context"
	"errors"
	"io"
	"io/fs"

	repocache "github.com/goliatone/go-repository-cache/cache"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	buildcmd "github.com/goliatone/go-contentgraph/internal/commands/build"
	"github.com/goliatone/go-contentgraph/internal/di"
	"github.com/goliatone/go-contentgraph/internal/store"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

// ErrMetricsDisabled is returned by WriteMetrics when no registry is wired.
var ErrMetricsDisabled = errors.New("contentgraph: metrics are disabled")

// ErrDanglingReferences matches build errors caused by unresolved references.
var ErrDanglingReferences = buildcmd.ErrDanglingReferences

// Node exports the content node type.
type Node = interfaces.ContentNode

// BuildResult exports the summary of a graph build.
type BuildResult = buildcmd.Result

// DanglingReference exports the unresolved reference record.
type DanglingReference = store.DanglingReference

// BuildGraphCommand exports the build command message.
type BuildGraphCommand = buildcmd.BuildGraphCommand

// BuildGraphHandler exports the build command handler.
type BuildGraphHandler = buildcmd.BuildGraphHandler

// Option customises the module wiring.
type Option = di.Option

func WithFS(fsys fs.FS) Option { return di.WithFS(fsys) }

func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

func WithBunDB(db *bun.DB) Option { return di.WithBunDB(db) }

func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return di.WithCache(service, serializer)
}

func WithStore(s interfaces.NodeStore) Option { return di.WithStore(s) }

func WithMetricsRegistry(reg *prom.Registry) Option { return di.WithMetricsRegistry(reg) }

// Module is the top level façade over the content graph runtime.
type Module struct {
	container *di.Container
}

// New constructs a module using cfg and optional wiring overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Build maps every configured source and resolves the resulting graph.
func (m *Module) Build(ctx context.Context) (*BuildResult, error) {
	return m.container.Build(ctx)
}

// BuildHandler returns a go-command handler for BuildGraphCommand. onResult
// may be nil.
func (m *Module) BuildHandler(onResult func(*BuildResult)) *BuildGraphHandler {
	return m.container.BuildGraphHandler(onResult)
}

// Execute runs cmd through the build handler and returns the build result.
// The result is returned even when the command fails on dangling references.
func (m *Module) Execute(ctx context.Context, cmd BuildGraphCommand) (*BuildResult, error) {
	var result *BuildResult
	err := m.BuildHandler(func(r *BuildResult) { result = r }).Execute(ctx, cmd)
	return result, err
}

// Nodes lists the nodes currently held by the store.
func (m *Module) Nodes(ctx context.Context) ([]*Node, error) {
	return m.container.Store().List(ctx)
}

// Node returns a single stored node.
func (m *Module) Node(ctx context.Context, id string) (*Node, error) {
	return m.container.Store().Get(ctx, id)
}

// Export writes the stored graph as a JSON array.
func (m *Module) Export(ctx context.Context, w io.Writer) error {
	nodes, err := m.Nodes(ctx)
	if err != nil {
		return err
	}
	return store.Export(w, nodes)
}

// WriteMetrics writes the metrics registry in the Prometheus text format.
func (m *Module) WriteMetrics(path string) error {
	reg := m.container.MetricsRegistry()
	if reg == nil {
		return ErrMetricsDisabled
	}
	return prom.WriteToTextfile(path, reg)
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
