package source

import (
	"errors"
	"io/fs"
	"path"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

// FSAdapter exposes an fs.FS through the interfaces.FileSystem contract used
// by the node mappers.
type FSAdapter struct {
	fsys fs.FS
}

var _ interfaces.FileSystem = (*FSAdapter)(nil)

// NewFSAdapter wraps fsys.
func NewFSAdapter(fsys fs.FS) *FSAdapter {
	return &FSAdapter{fsys: fsys}
}

// Exists reports whether p exists. Only fs.ErrNotExist is treated as absence;
// other stat failures are returned.
func (a *FSAdapter) Exists(p string) (bool, error) {
	_, err := fs.Stat(a.fsys, fsPath(p))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ReadDir returns the entry names directly inside p, sorted by name.
func (a *FSAdapter) ReadDir(p string) ([]string, error) {
	entries, err := fs.ReadDir(a.fsys, fsPath(p))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// fsPath converts p into the unrooted, cleaned form fs.FS expects.
func fsPath(p string) string {
	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return "."
	}
	return cleaned[1:]
}
