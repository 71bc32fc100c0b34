package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

var (
	ErrNodeRequired = errors.New("contentgraph store: node is required")
	ErrNodeNotFound = errors.New("contentgraph store: node not found")
)

// NotFoundError reports a missing node id. It matches ErrNodeNotFound.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("contentgraph store: node %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}

// MemoryStore keeps nodes in registration order. Registering an existing id
// replaces the node in place.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	nodes map[string]*interfaces.ContentNode
}

var _ interfaces.NodeStore = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nodes: map[string]*interfaces.ContentNode{}}
}

// Register implements interfaces.NodeSink.
func (s *MemoryStore) Register(_ context.Context, node *interfaces.ContentNode) error {
	if node == nil {
		return ErrNodeRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[node.ID]; !ok {
		s.order = append(s.order, node.ID)
	}
	s.nodes[node.ID] = node
	return nil
}

// Get returns the node registered under id.
func (s *MemoryStore) Get(_ context.Context, id string) (*interfaces.ContentNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.nodes[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return node, nil
}

// List returns every node in first-registration order.
func (s *MemoryStore) List(context.Context) ([]*interfaces.ContentNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*interfaces.ContentNode, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out, nil
}

// Len returns the number of distinct nodes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
