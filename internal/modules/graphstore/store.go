// README: Graph snapshot persistence. Lets a process restart skip
// re-running the OSM build pipeline by loading the last-saved topology
// straight from Postgres. This is a whole-graph snapshot rather than a
// per-aggregate CRUD store, so it favors truncate-and-bulk-insert over
// row-by-row CAS updates.
package graphstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"matchd/internal/graph"
)

// Store persists road-graph snapshots to Postgres. It does not persist
// rider, driver, or match state.
type Store struct {
	db *pgxpool.Pool
}

// NewStore wraps an existing connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Save replaces the persisted snapshot with g's current nodes and edges.
func (s *Store) Save(ctx context.Context, g *graph.Graph) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE TABLE graph_edges, graph_nodes`); err != nil {
		return err
	}

	nodes := g.Nodes()
	batch := &pgxBatch{}
	for idx, n := range nodes {
		batch.queue(`INSERT INTO graph_nodes (idx, lat, lon) VALUES ($1, $2, $3)`, idx, n.Lat, n.Lon)
	}
	for _, e := range g.Edges() {
		batch.queue(`INSERT INTO graph_edges (id, from_idx, to_idx, weight) VALUES ($1, $2, $3, $4)`,
			e.ID, e.From, e.To, e.Weight)
	}
	if err := batch.send(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Load rebuilds a Graph from the persisted snapshot. Node indices are
// reassigned in ascending idx order, which AddNode preserves since nodes
// are appended in the order they're inserted here.
func (s *Store) Load(ctx context.Context) (*graph.Graph, error) {
	g := graph.New()

	nodeRows, err := s.db.Query(ctx, `SELECT lat, lon FROM graph_nodes ORDER BY idx ASC`)
	if err != nil {
		return nil, err
	}
	for nodeRows.Next() {
		var lat, lon float64
		if err := nodeRows.Scan(&lat, &lon); err != nil {
			nodeRows.Close()
			return nil, err
		}
		g.AddNode(lat, lon)
	}
	nodeRows.Close()
	if err := nodeRows.Err(); err != nil {
		return nil, err
	}

	edgeRows, err := s.db.Query(ctx, `SELECT id, from_idx, to_idx, weight FROM graph_edges`)
	if err != nil {
		return nil, err
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var id, from, to int
		var weight float64
		if err := edgeRows.Scan(&id, &from, &to, &weight); err != nil {
			return nil, err
		}
		if err := g.AddEdge(id, from, to, weight); err != nil {
			return nil, err
		}
	}
	if err := edgeRows.Err(); err != nil {
		return nil, err
	}

	return g, nil
}
