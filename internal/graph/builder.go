package graph

import (
	"context"
	"errors"

	"github.com/goliatone/go-contentgraph/internal/digest"
	"github.com/goliatone/go-contentgraph/internal/identity"
	"github.com/goliatone/go-contentgraph/internal/logging"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

var (
	ErrSinkRequired       = errors.New("contentgraph graph: node sink is required")
	ErrFileSystemRequired = errors.New("contentgraph graph: filesystem is required")
	ErrRecordRequired     = errors.New("contentgraph graph: source record is required")
)

// Category labels a video-like content family. The label is written verbatim
// as the node type; its dash-cased plural prefixes id keys.
type Category string

const (
	CategoryChallenge     Category = interfaces.NodeTypeChallenge
	CategoryLesson        Category = interfaces.NodeTypeLesson
	CategoryGuestTutorial Category = interfaces.NodeTypeGuestTutorial
)

// KeyPrefix returns the id key namespace of the category, e.g. "guest-tutorials".
func (c Category) KeyPrefix() string {
	return DashCase(string(c)) + "s"
}

// Config wires the builder collaborators. IDs and Digest default to
// identity.Synthesizer and digest.SHA256; Logger defaults to a no-op logger.
type Config struct {
	Sink   interfaces.NodeSink
	IDs    interfaces.IDSynthesizer
	Digest interfaces.Digester
	FS     interfaces.FileSystem
	Logger interfaces.Logger
}

// Builder maps source records onto content nodes and registers them with the
// sink. It holds no mutable state, so one Builder can serve concurrent calls
// when the sink allows it.
type Builder struct {
	sink   interfaces.NodeSink
	ids    interfaces.IDSynthesizer
	digest interfaces.Digester
	fs     interfaces.FileSystem
	logger interfaces.Logger
}

// NewBuilder constructs a Builder from cfg.
func NewBuilder(cfg Config) *Builder {
	b := &Builder{
		sink:   cfg.Sink,
		ids:    cfg.IDs,
		digest: cfg.Digest,
		fs:     cfg.FS,
		logger: cfg.Logger,
	}
	if b.ids == nil {
		b.ids = identity.Synthesizer{}
	}
	if b.digest == nil {
		b.digest = digest.SHA256{}
	}
	if b.logger == nil {
		b.logger = logging.NoOp()
	}
	return b
}

// BuildChallengeNode maps a challenge file or one of its contributions.
func (b *Builder) BuildChallengeNode(ctx context.Context, record *interfaces.SourceRecord) error {
	return b.buildVideoLike(ctx, record, CategoryChallenge)
}

// BuildLessonNode maps a lesson file or one of its contributions.
func (b *Builder) BuildLessonNode(ctx context.Context, record *interfaces.SourceRecord) error {
	return b.buildVideoLike(ctx, record, CategoryLesson)
}

// BuildGuestTutorialNode maps a guest tutorial file or one of its contributions.
func (b *Builder) BuildGuestTutorialNode(ctx context.Context, record *interfaces.SourceRecord) error {
	return b.buildVideoLike(ctx, record, CategoryGuestTutorial)
}

// BuildTrackNode maps a track file into a Track node and, for main tracks,
// its Chapter nodes. Tracks whose type is neither "main" nor "side" are
// skipped without error.
func (b *Builder) BuildTrackNode(ctx context.Context, record *interfaces.SourceRecord) error {
	if err := b.ready(record); err != nil {
		return err
	}
	return b.buildTrack(ctx, record)
}

func (b *Builder) ready(record *interfaces.SourceRecord) error {
	if b.sink == nil {
		return ErrSinkRequired
	}
	if record == nil {
		return ErrRecordRequired
	}
	return nil
}

func (b *Builder) register(ctx context.Context, logger interfaces.Logger, node *interfaces.ContentNode) error {
	if err := b.sink.Register(ctx, node); err != nil {
		return err
	}
	logging.WithNode(logger.WithContext(ctx), node).Debug("graph.node.registered")
	return nil
}

func (b *Builder) newNode(id, parent, nodeType string, data, fields map[string]any) *interfaces.ContentNode {
	return &interfaces.ContentNode{
		ID:     id,
		Parent: parent,
		Internal: interfaces.NodeInternal{
			Type:          nodeType,
			ContentDigest: b.digest.Digest(data),
		},
		Fields: fields,
	}
}
