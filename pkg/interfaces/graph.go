package interfaces

import "context"

// Node type discriminants written to ContentNode.Internal.Type.
const (
	NodeTypeChallenge     = "Challenge"
	NodeTypeLesson        = "Lesson"
	NodeTypeGuestTutorial = "GuestTutorial"
	NodeTypeContribution  = "Contribution"
	NodeTypeTrack         = "Track"
	NodeTypeChapter       = "Chapter"
)

// SourceRecord is a parsed JSON content file together with the location
// metadata the host recorded while discovering it. Mappers treat it as
// read-only.
type SourceRecord struct {
	// ID is the host identifier of the JSON file; mapped nodes use it as parent.
	ID string
	// Data holds the decoded JSON object.
	Data map[string]any
	// RelativePath is the slash separated path of the file below its source root.
	RelativePath string
	// RelativeDirectory is the directory portion of RelativePath ("" at the root).
	RelativeDirectory string
	// Dir is the containing directory as a path inside the host FileSystem.
	Dir string
	// Name is the file name without its extension.
	Name string
	// Base is the file name including its extension.
	Base string
}

// NodeInternal carries the host bookkeeping fields of a node.
type NodeInternal struct {
	Type          string `json:"type"`
	ContentDigest string `json:"contentDigest"`
}

// ContentNode is a graph record handed to a NodeSink. Fields holds the
// passthrough data plus derived fields; ID, Parent and Internal are kept
// apart so callers never have to type-assert them.
type ContentNode struct {
	ID       string
	Parent   string
	Internal NodeInternal
	Fields   map[string]any
}

// Document flattens the node into the shape consumed by static-site content
// layers: every field plus id, parent and internal.
func (n *ContentNode) Document() map[string]any {
	if n == nil {
		return nil
	}
	doc := make(map[string]any, len(n.Fields)+3)
	for key, value := range n.Fields {
		doc[key] = value
	}
	doc["id"] = n.ID
	doc["parent"] = n.Parent
	doc["internal"] = map[string]any{
		"type":          n.Internal.Type,
		"contentDigest": n.Internal.ContentDigest,
	}
	return doc
}

// NodeSink accepts finished nodes. Registering the same node id twice must be
// safe; implementations typically upsert.
type NodeSink interface {
	Register(ctx context.Context, node *ContentNode) error
}

// NodeSinkFunc adapts a function to NodeSink.
type NodeSinkFunc func(ctx context.Context, node *ContentNode) error

// Register calls f(ctx, node).
func (f NodeSinkFunc) Register(ctx context.Context, node *ContentNode) error {
	return f(ctx, node)
}

// NodeStore is a NodeSink that can also be read back.
type NodeStore interface {
	NodeSink
	Get(ctx context.Context, id string) (*ContentNode, error)
	List(ctx context.Context) ([]*ContentNode, error)
}

// IDSynthesizer turns a namespaced key into an opaque identifier. The same key
// must always produce the same identifier, across calls and across runs.
type IDSynthesizer interface {
	SynthesizeID(key string) string
}

// IDSynthesizerFunc adapts a function to IDSynthesizer.
type IDSynthesizerFunc func(key string) string

// SynthesizeID calls f(key).
func (f IDSynthesizerFunc) SynthesizeID(key string) string {
	return f(key)
}

// Digester fingerprints node data for change detection. Identical input must
// produce identical output.
type Digester interface {
	Digest(data map[string]any) string
}

// DigesterFunc adapts a function to Digester.
type DigesterFunc func(data map[string]any) string

// Digest calls f(data).
func (f DigesterFunc) Digest(data map[string]any) string {
	return f(data)
}

// FileSystem is the narrow view of the host filesystem mappers rely on.
type FileSystem interface {
	// Exists reports whether path exists. A missing path is not an error.
	Exists(path string) (bool, error)
	// ReadDir lists entry names directly inside path.
	ReadDir(path string) ([]string, error)
}
