package store

import (
	"context"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

// SinkMetrics counts node registrations by node type and outcome.
type SinkMetrics struct {
	registrations *prom.CounterVec
}

// NewSinkMetrics creates the counters and registers them with reg. A nil reg
// gets a private registry.
func NewSinkMetrics(reg prom.Registerer) *SinkMetrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &SinkMetrics{
		registrations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "contentgraph",
			Name:      "node_registrations_total",
			Help:      "Node registrations by node type and result",
		}, []string{"type", "result"}),
	}
	reg.MustRegister(m.registrations)
	return m
}

func (m *SinkMetrics) observe(nodeType string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.registrations.WithLabelValues(nodeType, result).Inc()
}

type instrumentedStore struct {
	interfaces.NodeStore
	metrics *SinkMetrics
}

// Instrument wraps store so every Register call is counted. A nil metrics
// value returns store unchanged.
func Instrument(store interfaces.NodeStore, metrics *SinkMetrics) interfaces.NodeStore {
	if metrics == nil {
		return store
	}
	return &instrumentedStore{NodeStore: store, metrics: metrics}
}

func (s *instrumentedStore) Register(ctx context.Context, node *interfaces.ContentNode) error {
	err := s.NodeStore.Register(ctx, node)
	nodeType := ""
	if node != nil {
		nodeType = node.Internal.Type
	}
	s.metrics.observe(nodeType, err)
	return err
}
