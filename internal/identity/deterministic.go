package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys are hashed verbatim: "lessons/Intro" and "lessons/intro" are distinct
// nodes, so normalization stays off. Callers prefix keys by node type to
// avoid collisions between types.
func UUID(key string) uuid.UUID {
	if strings.TrimSpace(key) == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid
}

// NodeID returns the string form of UUID(key).
func NodeID(key string) string {
	return UUID(key).String()
}

// FileID derives the host identifier of a source file from its path inside
// the content filesystem.
func FileID(path string) string {
	return NodeID("contentgraph:file:" + path)
}

// Synthesizer satisfies interfaces.IDSynthesizer using NodeID.
type Synthesizer struct{}

var _ interfaces.IDSynthesizer = Synthesizer{}

// SynthesizeID implements interfaces.IDSynthesizer.
func (Synthesizer) SynthesizeID(key string) string {
	return NodeID(key)
}
