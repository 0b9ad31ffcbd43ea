package service

import (
	"context"

	"supplierwatch/internal/domain"
)

// GraphNode mirrors repository.GraphNode for the service-layer response
// shape (kept distinct so the HTTP layer never imports the repository
// package's internal DTOs directly).
type GraphNode struct {
	ID    string              `json:"id"`
	Kind  string              `json:"kind"`
	Label string              `json:"label"`
}

// GraphEdge mirrors repository.GraphEdge.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

// GraphView is the two-hop ownership projection returned to clients.
type GraphView struct {
	Nodes     []GraphNode `json:"nodes"`
	Edges     []GraphEdge `json:"edges"`
	Truncated bool        `json:"truncated"`
}

// Graph calls the bounded two-hop traversal and projects the raw rows to
// the typed node/edge kinds requires.
func (s *Services) Graph(ctx context.Context, id domain.CompanyId) (*GraphView, error) {
	nodes, edges, truncated, err := s.repo.GraphTwoHops(ctx, id, s.graphMaxNodes)
	if err != nil {
		return nil, err
	}
	view := &GraphView{Truncated: truncated}
	for _, n := range nodes {
		view.Nodes = append(view.Nodes, GraphNode{ID: n.ID, Kind: string(n.Kind), Label: n.Label})
	}
	for _, e := range edges {
		view.Edges = append(view.Edges, GraphEdge{From: e.From, To: e.To, Kind: e.Kind})
	}
	return view, nil
}
