package buildcmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-contentgraph/internal/commands"
	"github.com/goliatone/go-contentgraph/internal/logging"
	"github.com/goliatone/go-contentgraph/internal/store"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

const (
	buildOperation = "graph.build"
	danglingCode   = "GRAPH_DANGLING_REFERENCES"
	exportCode     = "GRAPH_EXPORT_FAILED"
)

// ErrDanglingReferences matches the error returned when FailOnDangling is set
// and the graph has unresolved references.
var ErrDanglingReferences = errors.New("build command: dangling references")

var _ command.Commander[BuildGraphCommand] = (*BuildGraphHandler)(nil)

// Result summarises one graph build.
type Result struct {
	Files    map[string]int
	Nodes    []*interfaces.ContentNode
	Dangling []store.DanglingReference
}

// FileCount returns the number of source files mapped.
func (r *Result) FileCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, count := range r.Files {
		total += count
	}
	return total
}

// Service runs the traversal and resolution steps of a build.
type Service interface {
	Build(ctx context.Context) (*Result, error)
}

// DanglingError lists the references that point at unregistered nodes.
type DanglingError struct {
	References []store.DanglingReference
}

func (e *DanglingError) Error() string {
	return fmt.Sprintf("build command: %d dangling references", len(e.References))
}

func (e *DanglingError) Is(target error) bool {
	return target == ErrDanglingReferences
}

// BuildGraphHandler executes BuildGraphCommand through the shared handler.
type BuildGraphHandler struct {
	inner *commands.Handler[BuildGraphCommand]
}

// HandlerConfig wires the handler's collaborators.
type HandlerConfig struct {
	Service Service
	Logger  interfaces.Logger
	// OnResult, when set, receives every successful build result before the
	// dangling check runs.
	OnResult func(*Result)
}

func NewBuildGraphHandler(cfg HandlerConfig, opts ...commands.HandlerOption[BuildGraphCommand]) *BuildGraphHandler {
	if cfg.Service == nil {
		panic("buildcmd: service cannot be nil")
	}
	baseLogger := cfg.Logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildGraphCommand) error {
		result, err := cfg.Service.Build(ctx)
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"file_count":     result.FileCount(),
			"node_count":     len(result.Nodes),
			"dangling_count": len(result.Dangling),
		}).Info("graph.build.completed")
		for _, ref := range result.Dangling {
			baseLogger.Warn("graph.reference.dangling",
				"node_id", ref.NodeID,
				"node_type", ref.NodeType,
				"field", ref.Field,
				"target", ref.Target,
			)
		}

		if msg.OutputPath != "" {
			if err := store.ExportFile(msg.OutputPath, result.Nodes); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryCommand, "graph export failed").
					WithTextCode(exportCode)
			}
			baseLogger.Info("graph.export.written", "path", msg.OutputPath, "node_count", len(result.Nodes))
		}

		if cfg.OnResult != nil {
			cfg.OnResult(result)
		}

		if msg.FailOnDangling && len(result.Dangling) > 0 {
			return goerrors.Wrap(&DanglingError{References: result.Dangling}, goerrors.CategoryValidation, "graph has dangling references").
				WithTextCode(danglingCode)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildGraphCommand]{
		commands.WithLogger[BuildGraphCommand](baseLogger),
		commands.WithOperation[BuildGraphCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildGraphCommand) map[string]any {
			fields := map[string]any{}
			if msg.OutputPath != "" {
				fields["output_path"] = msg.OutputPath
			}
			if msg.FailOnDangling {
				fields["fail_on_dangling"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildGraphCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildGraphHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildGraphCommand].
func (h *BuildGraphHandler) Execute(ctx context.Context, msg BuildGraphCommand) error {
	return h.inner.Execute(ctx, msg)
}
