package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mumtazka/kolam-sub000/internal/model"
)

type ScanLogRepository interface {
	Create(ctx context.Context, log *model.ScanLog) (*model.ScanLog, error)
	CountOn(ctx context.Context, day time.Time) (int, error)
}

type ScanLogRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewScanLogRepository(pool *pgxpool.Pool) ScanLogRepository {
	return &ScanLogRepositoryImpl{
		pool: pool,
	}
}

func (r *ScanLogRepositoryImpl) Create(ctx context.Context, log *model.ScanLog) (*model.ScanLog, error) {
	query := `
		INSERT INTO scan_logs (
			ticket_id, ticket_code, category_name, pool_id, shift,
			scanned_by, scanned_by_name, scanned_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		log.TicketID, log.TicketCode, log.CategoryName, log.PoolID, log.Shift,
		log.ScannedBy, log.ScannedByName, log.ScannedAt,
	).Scan(&log.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create scan log: %w", err)
	}

	return log, nil
}

func (r *ScanLogRepositoryImpl) CountOn(ctx context.Context, day time.Time) (int, error) {
	start, end := dayBounds(day)

	query := `
		SELECT COUNT(*)
		FROM scan_logs
		WHERE scanned_at >= $1 AND scanned_at < $2
	`

	var count int
	err := r.pool.QueryRow(ctx, query, start, end).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
