package graph

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"
	"testing"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

type recordingSink struct {
	nodes []*interfaces.ContentNode
	err   error
}

func (s *recordingSink) Register(_ context.Context, node *interfaces.ContentNode) error {
	if s.err != nil {
		return s.err
	}
	s.nodes = append(s.nodes, node)
	return nil
}

func (s *recordingSink) byType(nodeType string) []*interfaces.ContentNode {
	var out []*interfaces.ContentNode
	for _, node := range s.nodes {
		if node.Internal.Type == nodeType {
			out = append(out, node)
		}
	}
	return out
}

// memFS is a FileSystem over a flat list of file paths.
type memFS struct {
	files   []string
	statErr error
	readErr error
}

func (m *memFS) Exists(p string) (bool, error) {
	if m.statErr != nil {
		return false, m.statErr
	}
	for _, file := range m.files {
		if file == p || strings.HasPrefix(file, p+"/") {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFS) ReadDir(p string) ([]string, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	seen := map[string]bool{}
	var names []string
	for _, file := range m.files {
		if !strings.HasPrefix(file, p+"/") {
			continue
		}
		name := strings.SplitN(strings.TrimPrefix(file, p+"/"), "/", 2)[0]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

var errBoom = errors.New("boom")

func keyIDs() interfaces.IDSynthesizer {
	return interfaces.IDSynthesizerFunc(func(key string) string { return "id:" + key })
}

func fixedDigest() interfaces.Digester {
	return interfaces.DigesterFunc(func(data map[string]any) string { return "digest" })
}

func newTestBuilder(sink interfaces.NodeSink, fs interfaces.FileSystem) *Builder {
	return NewBuilder(Config{Sink: sink, IDs: keyIDs(), Digest: fixedDigest(), FS: fs})
}

// record builds a SourceRecord for a file below a source root mounted at root.
func record(root, relativePath string, data map[string]any) *interfaces.SourceRecord {
	relDir := path.Dir(relativePath)
	if relDir == "." {
		relDir = ""
	}
	base := path.Base(relativePath)
	return &interfaces.SourceRecord{
		ID:                "file:" + path.Join(root, relativePath),
		Data:              data,
		RelativePath:      relativePath,
		RelativeDirectory: relDir,
		Dir:               path.Join(root, relDir),
		Name:              strings.TrimSuffix(base, path.Ext(base)),
		Base:              base,
	}
}

func onlyNode(t *testing.T, sink *recordingSink) *interfaces.ContentNode {
	t.Helper()
	if len(sink.nodes) != 1 {
		t.Fatalf("expected exactly one node, got %d", len(sink.nodes))
	}
	return sink.nodes[0]
}

func digestRecorder(seen *[]map[string]any) interfaces.Digester {
	return interfaces.DigesterFunc(func(data map[string]any) string {
		*seen = append(*seen, data)
		return "d"
	})
}
