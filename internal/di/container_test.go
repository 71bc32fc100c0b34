package di

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-contentgraph/internal/logging/gologger"
	"github.com/goliatone/go-contentgraph/internal/runtimeconfig"
	"github.com/goliatone/go-contentgraph/internal/store"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"lessons/intro/index.json":                  {Data: []byte(`{"title":"Intro"}`)},
		"lessons/intro/contributions/alice.json":    {Data: []byte(`{"title":"Alice's take"}`)},
		"tracks/main-tracks/basics.json":            {Data: []byte(`{"type":"main","chapters":[{"title":"Start","lessons":["intro","missing"]}]}`)},
		"challenges/starfield/index.json":           {Data: []byte(`{"title":"Starfield"}`)},
		"challenges/starfield/contributions/x.json": {Data: []byte(`{"title":"X"}`)},
		"guest-tutorials/shaders/index.json":        {Data: []byte(`{"title":"Shaders"}`)},
	}
}

func TestContainerBuildUsesMemoryStoreByDefault(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig(), WithFS(contentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.Store().(*store.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", container.Store())
	}

	result, err := container.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.FileCount() != 6 {
		t.Fatalf("expected 6 files, got %d (%v)", result.FileCount(), result.Files)
	}

	counts := map[string]int{}
	for _, node := range result.Nodes {
		counts[node.Internal.Type]++
	}
	want := map[string]int{
		interfaces.NodeTypeLesson:        1,
		interfaces.NodeTypeChallenge:     1,
		interfaces.NodeTypeGuestTutorial: 1,
		interfaces.NodeTypeContribution:  2,
		interfaces.NodeTypeTrack:         1,
		interfaces.NodeTypeChapter:       1,
	}
	for nodeType, count := range want {
		if counts[nodeType] != count {
			t.Fatalf("expected %d %s nodes, got %d (%v)", count, nodeType, counts[nodeType], counts)
		}
	}

	if len(result.Dangling) != 1 || result.Dangling[0].Field != "lessons" {
		t.Fatalf("expected the missing lesson to dangle, got %v", result.Dangling)
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg, WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Sources = nil
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrSourcesRequired) {
		t.Fatalf("expected ErrSourcesRequired, got %v", err)
	}
}

func TestContainerBunStoreWithCacheAndMetrics(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage = runtimeconfig.StorageConfig{
		Provider: runtimeconfig.StorageProviderBun,
		Driver:   "sqlite3",
		DSN:      "file:di_container_test?mode=memory&cache=shared",
	}
	cfg.Cache.Enabled = true

	reg := prom.NewRegistry()
	container, err := NewContainer(cfg, WithFS(contentFS()), WithMetricsRegistry(reg))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Close()
	})

	result, err := container.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(result.Nodes) != 7 {
		t.Fatalf("expected 7 stored nodes, got %d", len(result.Nodes))
	}
	if container.MetricsRegistry() != reg {
		t.Fatal("expected the supplied registry to be kept")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registration metrics to be gathered")
	}
}
