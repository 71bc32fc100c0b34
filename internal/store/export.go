package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goliatone/go-contentgraph/internal/digest"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

// Export writes nodes as an indented JSON array of flat documents. NaN
// values are written as null.
func Export(w io.Writer, nodes []*interfaces.ContentNode) error {
	docs := make([]any, 0, len(nodes))
	for _, node := range nodes {
		docs = append(docs, digest.Normalize(node.Document()))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("contentgraph store: encode export: %w", err)
	}
	return nil
}

// ExportFile writes Export output to path, creating parent directories.
func ExportFile(path string, nodes []*interfaces.ContentNode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("contentgraph store: create export dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("contentgraph store: create export: %w", err)
	}
	if err := Export(file, nodes); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
