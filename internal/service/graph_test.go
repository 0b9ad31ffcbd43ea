package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/repository"
	"supplierwatch/internal/ruleengine"
)

func TestGraphProjectsRepositoryRowsToTypedNodesAndEdges(t *testing.T) {
	repo := &stubRepo{
		graphNodes: []repository.GraphNode{
			{ID: "company:1", Kind: repository.GraphNodeCompany, Label: "Seed"},
			{ID: "person:hash-1", Kind: repository.GraphNodePerson, Label: "Partner"},
		},
		graphEdges: []repository.GraphEdge{
			{From: "person:hash-1", To: "company:1", Kind: "owns-share-of"},
		},
		graphTruncated: true,
	}
	svc := New(Config{Repo: repo, Strawman: ruleengine.DefaultStrawmanConfig(), Now: fixedClock})

	view, err := svc.Graph(context.Background(), testCompanyID(t))
	require.NoError(t, err)
	require.True(t, view.Truncated)
	require.Len(t, view.Nodes, 2)
	require.Equal(t, "person", view.Nodes[1].Kind)
	require.Len(t, view.Edges, 1)
}
