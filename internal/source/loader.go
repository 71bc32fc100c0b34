package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-contentgraph/internal/identity"
	"github.com/goliatone/go-contentgraph/internal/logging"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

const (
	sourceNotObjectCode = "SOURCE_NOT_OBJECT"
	sourceDecodeCode    = "SOURCE_DECODE_FAILED"
)

var (
	ErrFSRequired      = errors.New("contentgraph source: filesystem is required")
	ErrBuilderRequired = errors.New("contentgraph source: node builder is required")
	ErrUnknownCategory = errors.New("contentgraph source: unknown category")
	ErrNotObject       = errors.New("contentgraph source: json document is not an object")
)

// NodeBuilder is the set of mapping operations the loader dispatches to.
type NodeBuilder interface {
	BuildChallengeNode(ctx context.Context, record *interfaces.SourceRecord) error
	BuildLessonNode(ctx context.Context, record *interfaces.SourceRecord) error
	BuildGuestTutorialNode(ctx context.Context, record *interfaces.SourceRecord) error
	BuildTrackNode(ctx context.Context, record *interfaces.SourceRecord) error
}

// Source binds a content root directory to the category of the files below it.
type Source struct {
	// Category is one of the node types Challenge, Lesson, GuestTutorial or Track.
	Category string
	// Root is the directory inside the loader filesystem.
	Root string
}

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	FS      fs.FS
	Sources []Source
	Logger  interfaces.Logger
}

// Loader walks every source root, decodes each JSON file into a
// SourceRecord and hands it to the builder operation of its category.
type Loader struct {
	fsys    fs.FS
	sources []Source
	logger  interfaces.Logger
}

// Result counts the files mapped per category.
type Result struct {
	Files map[string]int
}

// Total returns the number of files mapped across all categories.
func (r *Result) Total() int {
	total := 0
	for _, count := range r.Files {
		total += count
	}
	return total
}

// NewLoader constructs a Loader from cfg.
func NewLoader(cfg LoaderConfig) *Loader {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Loader{
		fsys:    cfg.FS,
		sources: append([]Source(nil), cfg.Sources...),
		logger:  logger,
	}
}

// FileSystem returns the loader filesystem in the shape the mappers need.
func (l *Loader) FileSystem() interfaces.FileSystem {
	return NewFSAdapter(l.fsys)
}

// Load maps every JSON file below the configured roots. Roots that do not
// exist are skipped. The first failing file aborts the walk.
func (l *Loader) Load(ctx context.Context, builder NodeBuilder) (*Result, error) {
	if l.fsys == nil {
		return nil, ErrFSRequired
	}
	if builder == nil {
		return nil, ErrBuilderRequired
	}

	result := &Result{Files: map[string]int{}}
	for _, src := range l.sources {
		build, err := dispatch(builder, src.Category)
		if err != nil {
			return result, err
		}
		count, err := l.loadSource(ctx, src, build)
		result.Files[src.Category] += count
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (l *Loader) loadSource(ctx context.Context, src Source, build buildFunc) (int, error) {
	root := fsPath(src.Root)
	logger := logging.WithSourceContext(l.logger, root, src.Category)

	if _, err := fs.Stat(l.fsys, root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("source.root.missing")
			return 0, nil
		}
		return 0, fmt.Errorf("contentgraph source: stat %s: %w", root, err)
	}

	var files []string
	walkErr := fs.WalkDir(l.fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, p)
		}
		return nil
	})
	if walkErr != nil {
		return 0, walkErr
	}
	sort.Strings(files)

	count := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		record, err := l.LoadRecord(root, file)
		if err != nil {
			return count, err
		}
		fileCtx := logging.ContextWithFields(ctx, map[string]any{"file_id": record.ID})
		if err := build(fileCtx, record); err != nil {
			return count, fmt.Errorf("contentgraph source: map %s: %w", file, err)
		}
		count++
	}
	logger.Debug("source.root.loaded", "files", count)
	return count, nil
}

// LoadRecord reads and decodes file, deriving location metadata relative to
// root. Both paths are inside the loader filesystem.
func (l *Loader) LoadRecord(root, file string) (*interfaces.SourceRecord, error) {
	root, file = fsPath(root), fsPath(file)
	raw, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("contentgraph source: read %s: %w", file, err)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "decode "+file).
			WithTextCode(sourceDecodeCode)
	}
	data, ok := decoded.(map[string]any)
	if !ok {
		return nil, goerrors.Wrap(ErrNotObject, goerrors.CategoryValidation, file).
			WithTextCode(sourceNotObjectCode)
	}

	rel := relativeTo(root, file)
	relDir := path.Dir(rel)
	if relDir == "." {
		relDir = ""
	}
	base := path.Base(file)
	return &interfaces.SourceRecord{
		ID:                identity.FileID(file),
		Data:              data,
		RelativePath:      rel,
		RelativeDirectory: relDir,
		Dir:               path.Dir(file),
		Name:              strings.TrimSuffix(base, path.Ext(base)),
		Base:              base,
	}, nil
}

func relativeTo(root, file string) string {
	if root == "." {
		return file
	}
	return strings.TrimPrefix(file, root+"/")
}

type buildFunc func(context.Context, *interfaces.SourceRecord) error

func dispatch(builder NodeBuilder, category string) (buildFunc, error) {
	switch category {
	case interfaces.NodeTypeChallenge:
		return builder.BuildChallengeNode, nil
	case interfaces.NodeTypeLesson:
		return builder.BuildLessonNode, nil
	case interfaces.NodeTypeGuestTutorial:
		return builder.BuildGuestTutorialNode, nil
	case interfaces.NodeTypeTrack:
		return builder.BuildTrackNode, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}
