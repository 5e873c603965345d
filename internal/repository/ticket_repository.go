package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mumtazka/kolam-sub000/internal/model"
	apperrors "github.com/mumtazka/kolam-sub000/pkg/app_errors"
)

type TicketRepository interface {
	FindByCode(ctx context.Context, code string) (*model.Ticket, error)
	FindByBatchID(ctx context.Context, batchID uuid.UUID) ([]*model.Ticket, error)
	FindByDate(ctx context.Context, day time.Time) ([]*model.Ticket, error)
	CountCreatedOn(ctx context.Context, day time.Time) (int, error)

	// ConsumeUsage applies one redemption as an atomic conditional update:
	// the row is touched only while usage_count is still below max_usage, so
	// two simultaneous scans can never both consume the last use. Returns
	// ErrTicketExhausted when the guard rejects the update and
	// ErrTicketNotFound when the code does not exist.
	ConsumeUsage(ctx context.Context, code string, scannedBy string, now time.Time) (*model.Ticket, error)

	// Transaction methods
	InsertBatch(ctx context.Context, tx pgx.Tx, tickets []*model.Ticket) error
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `id, ticket_id, ticket_code, kind, category_id, category_name, package_id,
		price, max_usage, status, usage_count, nim, batch_id,
		created_by, created_by_name, shift, created_at, updated_at, scanned_at, scanned_by`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.TicketCode,
		&ticket.Kind,
		&ticket.CategoryID,
		&ticket.CategoryName,
		&ticket.PackageID,
		&ticket.Price,
		&ticket.MaxUsage,
		&ticket.Status,
		&ticket.UsageCount,
		&ticket.NIM,
		&ticket.BatchID,
		&ticket.CreatedBy,
		&ticket.CreatedByName,
		&ticket.Shift,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ScannedAt,
		&ticket.ScannedBy,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// InsertBatch writes one checkout's tickets inside the caller's transaction
// so the batch lands all-or-nothing. A unique-index violation on ticket_code
// surfaces as ErrTicketCodeConflict, which the issuance engine treats as
// retriable.
func (r *TicketRepositoryImpl) InsertBatch(ctx context.Context, tx pgx.Tx, tickets []*model.Ticket) error {
	query := `
		INSERT INTO tickets (
			ticket_id, ticket_code, kind, category_id, category_name, package_id,
			price, max_usage, status, usage_count, nim, batch_id,
			created_by, created_by_name, shift
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	for _, ticket := range tickets {
		err := tx.QueryRow(ctx, query,
			ticket.TicketID, ticket.TicketCode, ticket.Kind,
			ticket.CategoryID, ticket.CategoryName, ticket.PackageID,
			ticket.Price, ticket.MaxUsage, ticket.Status, ticket.UsageCount,
			ticket.NIM, ticket.BatchID,
			ticket.CreatedBy, ticket.CreatedByName, ticket.Shift,
		).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: %s", apperrors.ErrTicketCodeConflict, ticket.TicketCode)
			}
			return fmt.Errorf("failed to insert ticket: %w", err)
		}
	}

	return nil
}

func (r *TicketRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ticket_code = $1
	`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) FindByBatchID(ctx context.Context, batchID uuid.UUID) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE batch_id = $1
		ORDER BY id
	`

	return r.queryTickets(ctx, query, batchID)
}

func (r *TicketRepositoryImpl) FindByDate(ctx context.Context, day time.Time) ([]*model.Ticket, error) {
	start, end := dayBounds(day)

	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
	`

	return r.queryTickets(ctx, query, start, end)
}

// CountCreatedOn counts tickets issued on the given (server local) day. It
// backs the sequence-number fallback when Redis is unavailable.
func (r *TicketRepositoryImpl) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	start, end := dayBounds(day)

	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE created_at >= $1 AND created_at < $2
	`

	var count int
	err := r.pool.QueryRow(ctx, query, start, end).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *TicketRepositoryImpl) ConsumeUsage(ctx context.Context, code string, scannedBy string, now time.Time) (*model.Ticket, error) {
	query := `
		UPDATE tickets
		SET usage_count = usage_count + 1,
			status = CASE WHEN usage_count + 1 >= max_usage THEN 'USED' ELSE status END,
			scanned_at = $2,
			scanned_by = $3,
			updated_at = $2
		WHERE ticket_code = $1 AND usage_count < max_usage
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, code, now, scannedBy))
	if err != nil {
		if err == pgx.ErrNoRows {
			// guard rejected: either the code is unknown or the ticket is spent
			if _, ferr := r.FindByCode(ctx, code); ferr != nil {
				return nil, ferr
			}
			return nil, apperrors.ErrTicketExhausted
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) queryTickets(ctx context.Context, query string, args ...interface{}) ([]*model.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)

	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
