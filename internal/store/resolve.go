package store

import (
	"fmt"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

// DanglingReference is a cross-reference field value that names no node.
type DanglingReference struct {
	NodeID   string
	NodeType string
	Field    string
	Target   string
}

func (d DanglingReference) String() string {
	return fmt.Sprintf("%s %s.%s -> %s", d.NodeType, d.NodeID, d.Field, d.Target)
}

var videoReferences = []string{"contributions"}

// referenceFields lists, per node type, the fields that hold node ids.
var referenceFields = map[string][]string{
	interfaces.NodeTypeChallenge:     videoReferences,
	interfaces.NodeTypeLesson:        videoReferences,
	interfaces.NodeTypeGuestTutorial: videoReferences,
	interfaces.NodeTypeContribution:  {"video"},
	interfaces.NodeTypeChapter:       {"track", "lessons"},
	interfaces.NodeTypeTrack:         {"chapters", "videos"},
}

// Resolve checks every cross-reference of nodes against the ids in nodes and
// returns the references that point nowhere, in node order.
func Resolve(nodes []*interfaces.ContentNode) []DanglingReference {
	known := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		known[node.ID] = struct{}{}
	}

	var dangling []DanglingReference
	for _, node := range nodes {
		for _, field := range referenceFields[node.Internal.Type] {
			for _, target := range referenceTargets(node.Fields[field]) {
				if _, ok := known[target]; ok {
					continue
				}
				dangling = append(dangling, DanglingReference{
					NodeID:   node.ID,
					NodeType: node.Internal.Type,
					Field:    field,
					Target:   target,
				})
			}
		}
	}
	return dangling
}

// referenceTargets accepts both freshly mapped values ([]string) and values
// decoded back from storage ([]any).
func referenceTargets(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
