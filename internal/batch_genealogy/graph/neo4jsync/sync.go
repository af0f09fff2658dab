package neo4jsync

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// Push mirrors a genealogy graph into Neo4j as (:GenealogyEntity) nodes and
// [:GENEALOGY] relationships scoped by dataset key. Nodes and relationships
// of the dataset that are no longer present are removed in the same
// transaction. A nil client is a no-op.
func Push(ctx context.Context, c *Client, datasetKey string, g *domain.Graph) error {
	if c == nil || c.Driver == nil || g == nil {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	nodes := NodeParams(datasetKey, g, now)
	rels := RelationshipParams(datasetKey, g, now)

	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
	defer session.Close(ctx)

	if res, err := session.Run(ctx,
		`CREATE CONSTRAINT genealogy_entity_key IF NOT EXISTS FOR (e:GenealogyEntity) REQUIRE (e.dataset, e.id) IS UNIQUE`,
		nil); err != nil {
		c.log.Warn("neo4j schema init failed (continuing)", "error", err)
	} else {
		_, _ = res.Consume(ctx)
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, st := range statements(datasetKey, nodes, rels, now) {
			res, err := tx.Run(ctx, st.cypher, st.params)
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}
	c.log.Info("genealogy pushed to neo4j", "dataset", datasetKey, "nodes", len(nodes), "relationships", len(rels))
	return nil
}

type statement struct {
	cypher string
	params map[string]any
}

const (
	upsertNodes = `
UNWIND $nodes AS n
MERGE (e:GenealogyEntity {dataset: n.dataset, id: n.id})
SET e += n
`
	pruneRelationships = `
MATCH (:GenealogyEntity {dataset: $dataset})-[r:GENEALOGY]->()
WHERE r.synced_at <> $synced_at
DELETE r
`
	pruneNodes = `
MATCH (e:GenealogyEntity {dataset: $dataset})
WHERE e.synced_at <> $synced_at
DETACH DELETE e
`
	upsertRelationships = `
UNWIND $rels AS r
MATCH (a:GenealogyEntity {dataset: r.dataset, id: r.from})
MATCH (b:GenealogyEntity {dataset: r.dataset, id: r.to})
MERGE (a)-[x:GENEALOGY {dataset: r.dataset, index: r.index}]->(b)
SET x += r
`
)

// statements is the write transaction of one push, in execution order. Every
// upserted node and relationship carries syncedAt, so the prunes only hit
// what the current graph no longer holds.
func statements(datasetKey string, nodes, rels []map[string]any, syncedAt string) []statement {
	scope := map[string]any{"dataset": datasetKey, "synced_at": syncedAt}
	out := make([]statement, 0, 4)
	if len(nodes) > 0 {
		out = append(out, statement{upsertNodes, map[string]any{"nodes": nodes}})
	}
	out = append(out,
		statement{pruneRelationships, scope},
		statement{pruneNodes, scope},
	)
	if len(rels) > 0 {
		out = append(out, statement{upsertRelationships, map[string]any{"rels": rels}})
	}
	return out
}

// NodeParams flattens entities into Neo4j property maps. Only primitive
// properties are kept; free-form attrs are not mirrored.
func NodeParams(datasetKey string, g *domain.Graph, syncedAt string) []map[string]any {
	out := make([]map[string]any, 0, g.NodeCount())
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		m := map[string]any{
			"dataset":   datasetKey,
			"id":        n.ID,
			"type":      string(n.Type),
			"label":     n.Label,
			"synced_at": syncedAt,
		}
		putString(m, "material_name", n.MaterialName)
		putString(m, "unit", n.Unit)
		putString(m, "status", n.Status)
		putString(m, "quality", n.Quality)
		putString(m, "specification", n.Specification)
		putString(m, "supplier", n.Supplier)
		putString(m, "result", n.Result)
		if n.Quantity != 0 {
			m["quantity"] = n.Quantity
		}
		if n.ManufacturedAt != nil {
			m["manufactured_at"] = n.ManufacturedAt.UTC().Format(time.RFC3339)
		}
		if n.ExpiresAt != nil {
			m["expires_at"] = n.ExpiresAt.UTC().Format(time.RFC3339)
		}
		out = append(out, m)
	}
	return out
}

func RelationshipParams(datasetKey string, g *domain.Graph, syncedAt string) []map[string]any {
	out := make([]map[string]any, 0, g.EdgeCount())
	for i, e := range g.Edges {
		m := map[string]any{
			"dataset":   datasetKey,
			"index":     i,
			"from":      e.From,
			"to":        e.To,
			"kind":      string(e.Kind),
			"synced_at": syncedAt,
		}
		if e.Quantity != 0 {
			m["quantity"] = e.Quantity
		}
		putString(m, "unit", e.Unit)
		out = append(out, m)
	}
	return out
}

func putString(m map[string]any, k, v string) {
	if v != "" {
		m[k] = v
	}
}
