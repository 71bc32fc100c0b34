package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

const (
	rootModule     = "contentgraph"
	graphModule    = "contentgraph.graph"
	sourceModule   = "contentgraph.source"
	storeModule    = "contentgraph.store"
	commandsModule = "contentgraph.commands"
)

const (
	fieldSourcePath = "source_path"
	fieldCategory   = "category"
	fieldNodeID     = "node_id"
	fieldNodeType   = "node_type"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// GraphLogger returns the logger namespace used by the node mappers.
func GraphLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, graphModule)
}

// SourceLogger returns the logger namespace used while walking content roots.
func SourceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sourceModule)
}

// StoreLogger returns the logger namespace used by node stores.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// CommandLogger returns a logger for command handlers of the given module
// ("build", ...), tagged so command executions can be filtered together.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := ModuleLogger(provider, commandsModule+"."+name)
	return WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

// WithSourceContext enriches logger with the source file path and category.
// Empty values are skipped.
func WithSourceContext(logger interfaces.Logger, path, category string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		fields[fieldCategory] = trimmed
	}
	return WithFields(logger, fields)
}

// WithNode enriches logger with a node id and type.
func WithNode(logger interfaces.Logger, node *interfaces.ContentNode) interfaces.Logger {
	if node == nil {
		return logger
	}
	return WithFields(logger, map[string]any{
		fieldNodeID:   node.ID,
		fieldNodeType: node.Internal.Type,
	})
}

// WithFields attaches structured fields when the logger supports the
// FieldsLogger extension. Nil or empty maps skip allocation.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
