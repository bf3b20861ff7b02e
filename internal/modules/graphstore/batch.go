package graphstore

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// pgxBatch is a thin helper around pgx.Batch so Save can queue a large
// number of node/edge inserts and submit them as one round trip.
type pgxBatch struct {
	b pgx.Batch
}

func (pb *pgxBatch) queue(sql string, args ...any) {
	pb.b.Queue(sql, args...)
}

func (pb *pgxBatch) send(ctx context.Context, tx pgx.Tx) error {
	if pb.b.Len() == 0 {
		return nil
	}
	results := tx.SendBatch(ctx, &pb.b)
	defer results.Close()
	for i := 0; i < pb.b.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}
