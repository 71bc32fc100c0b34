package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "contentgraph.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestGraphLoggerRequestsGraphModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = GraphLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != graphModule {
		t.Fatalf("expected graph module request, got %v", provider.requested)
	}
}

func TestCommandLoggerTagsComponent(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = CommandLogger(provider, " build ")

	if provider.requested[0] != commandsModule+".build" {
		t.Fatalf("expected build command module, got %v", provider.requested)
	}
	last := rec.fields[len(rec.fields)-1]
	if last["component"] != "command" || last["command_module"] != "build" {
		t.Fatalf("unexpected command fields %v", last)
	}
}

func TestWithSourceContextSkipsBlankValues(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithSourceContext(rec, "lessons/intro/index.json", "  ")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldSourcePath] != "lessons/intro/index.json" {
		t.Fatalf("expected source path field, got %v", rec.fields[0])
	}
	if _, ok := rec.fields[0][fieldCategory]; ok {
		t.Fatalf("expected blank category to be skipped, got %v", rec.fields[0])
	}
}

func TestWithNodeAddsIdentity(t *testing.T) {
	rec := &recordingLogger{}
	node := &interfaces.ContentNode{ID: "abc", Internal: interfaces.NodeInternal{Type: interfaces.NodeTypeTrack}}

	_ = WithNode(rec, node)

	if rec.fields[0][fieldNodeID] != "abc" || rec.fields[0][fieldNodeType] != "Track" {
		t.Fatalf("unexpected node fields %v", rec.fields[0])
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"run": 1})
	ctx = ContextWithFields(ctx, map[string]any{"file": "a.json"})

	fields := ContextFields(ctx)
	if fields["run"] != 1 || fields["file"] != "a.json" {
		t.Fatalf("expected merged fields, got %v", fields)
	}
	fields["run"] = 2
	if ContextFields(ctx)["run"] != 1 {
		t.Fatal("expected ContextFields to return a copy")
	}
}
