package repository

import (
	"context"
	"errors"
	"fmt"

	"hostel_complaints/internal/model"

	"github.com/jackc/pgx/v5"
)

// BlockRepository defines operations for hostel blocks
type BlockRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]model.Block, error)
	EnsureDefault(ctx context.Context) (int, error)
}

type blockRepository struct {
	db DBTX
}

// NewBlockRepository creates a new BlockRepository
func NewBlockRepository(db DBTX) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS (SELECT 1 FROM block WHERE block_id = $1)`
	if err := r.db.QueryRow(ctx, sql, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}
	return exists, nil
}

func (r *blockRepository) List(ctx context.Context) ([]model.Block, error) {
	rows, err := r.db.Query(ctx, `SELECT block_id, block_name FROM block ORDER BY block_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer rows.Close()

	blocks := []model.Block{}
	for rows.Next() {
		var b model.Block
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan block row: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating block rows: %w", err)
	}
	return blocks, nil
}

// EnsureDefault returns the ID of some existing block, creating the
// placeholder block first when the table is empty. A concurrent creator
// wins via ON CONFLICT and the loser re-reads its row.
func (r *blockRepository) EnsureDefault(ctx context.Context) (int, error) {
	id, err := r.first(ctx)
	if err != nil || id != 0 {
		return id, err
	}

	sql := `INSERT INTO block (block_name) VALUES ($1)
            ON CONFLICT (block_name) DO NOTHING
            RETURNING block_id`
	err = r.db.QueryRow(ctx, sql, model.DefaultBlockName).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to create default block: %w", err)
	}

	id, err = r.first(ctx)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("default block vanished after conflicting insert")
	}
	return id, nil
}

func (r *blockRepository) first(ctx context.Context) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `SELECT block_id FROM block ORDER BY block_id LIMIT 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to find a block: %w", err)
	}
	return id, nil
}
