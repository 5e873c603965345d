package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mumtazka/kolam-sub000/internal/cache"
	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/repository"
	"github.com/mumtazka/kolam-sub000/internal/ticketcode"
	apperrors "github.com/mumtazka/kolam-sub000/pkg/app_errors"
	"github.com/mumtazka/kolam-sub000/pkg/logger"
)

// maxCodeRetries bounds the regenerate-and-retry loop on ticket_code
// collisions. The random suffix gives ~1M combinations per (prefix, date,
// seq), so a repeated collision means something is very wrong.
const maxCodeRetries = 3

type IssuanceService interface {
	// IssueBatch turns a cart into persisted, uniquely coded tickets. The
	// whole batch lands in one transaction or not at all.
	IssueBatch(ctx context.Context, items []model.CartItem, staff model.StaffContext) (*model.IssueBatchResult, error)
}

// ticketDraft is an unsaved ticket plus the category prefix its codes are
// generated from.
type ticketDraft struct {
	ticket *model.Ticket
	prefix string
}

type IssuanceServiceImpl struct {
	pool       *pgxpool.Pool
	tickets    repository.TicketRepository
	categories repository.CategoryRepository
	packages   repository.PackageRepository
	sequences  cache.SequenceAllocator
}

func NewIssuanceService(
	pool *pgxpool.Pool,
	ticketRepository repository.TicketRepository,
	categoryRepository repository.CategoryRepository,
	packageRepository repository.PackageRepository,
	sequences cache.SequenceAllocator,
) IssuanceService {
	return &IssuanceServiceImpl{
		pool:       pool,
		tickets:    ticketRepository,
		categories: categoryRepository,
		packages:   packageRepository,
		sequences:  sequences,
	}
}

func (s *IssuanceServiceImpl) IssueBatch(ctx context.Context, items []model.CartItem, staff model.StaffContext) (*model.IssueBatchResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty cart", apperrors.ErrInvalidInput)
	}

	drafts, err := s.buildDrafts(ctx, items, staff)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startSeq := s.reserveSequences(ctx, now, len(drafts))

	batchID := uuid.New()
	for _, draft := range drafts {
		draft.ticket.BatchID = batchID
	}
	if err := assignCodes(drafts, now, startSeq); err != nil {
		return nil, err
	}

	if err := s.persistBatch(ctx, drafts, now, startSeq); err != nil {
		return nil, err
	}

	tickets := make([]*model.Ticket, len(drafts))
	for i, draft := range drafts {
		tickets[i] = draft.ticket
	}

	return &model.IssueBatchResult{
		BatchID:      batchID,
		TotalTickets: len(tickets),
		Tickets:      tickets,
	}, nil
}

// buildDrafts validates the cart and materializes unsaved ticket rows in
// cart order. Any validation failure aborts the whole batch before anything
// touches the store.
func (s *IssuanceServiceImpl) buildDrafts(ctx context.Context, items []model.CartItem, staff model.StaffContext) ([]ticketDraft, error) {
	drafts := make([]ticketDraft, 0)
	seenNIMs := make(map[string]bool)

	for _, item := range items {
		category, err := s.categories.FindByCategoryID(ctx, item.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrCategoryNotFound) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrCategoryNotFound, item.CategoryID)
			}
			return nil, err
		}

		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for %s", apperrors.ErrInvalidInput, category.Name)
		}

		if item.PackageID != nil {
			draft, err := s.buildPackageDraft(ctx, item, category, staff)
			if err != nil {
				return nil, err
			}
			drafts = append(drafts, draft)
			continue
		}

		for unit := 0; unit < item.Quantity; unit++ {
			nim, err := resolveNIM(item, category, unit, seenNIMs)
			if err != nil {
				return nil, err
			}

			drafts = append(drafts, ticketDraft{
				prefix: category.CodePrefix,
				ticket: &model.Ticket{
					TicketID:      uuid.New(),
					Kind:          model.TicketKindStandard,
					CategoryID:    category.CategoryID,
					CategoryName:  category.Name,
					Price:         category.Price,
					MaxUsage:      1,
					Status:        model.TicketStatusUnused,
					NIM:           nim,
					CreatedBy:     staff.ID,
					CreatedByName: staff.Name,
					Shift:         staff.Shift,
				},
			})
		}
	}

	return drafts, nil
}

// buildPackageDraft emits the single multi-use ticket a package purchase
// produces: max_usage carries the headcount, price the per-person rate.
func (s *IssuanceServiceImpl) buildPackageDraft(ctx context.Context, item model.CartItem, category *model.Category, staff model.StaffContext) (ticketDraft, error) {
	pkg, err := s.packages.FindByPackageID(ctx, *item.PackageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPackageNotFound) {
			return ticketDraft{}, fmt.Errorf("%w: %s", apperrors.ErrPackageNotFound, *item.PackageID)
		}
		return ticketDraft{}, err
	}

	if item.Quantity < pkg.MinPeople {
		return ticketDraft{}, fmt.Errorf("%w: %s requires at least %d people", apperrors.ErrBelowPackageMinimum, pkg.Name, pkg.MinPeople)
	}

	packageID := pkg.PackageID
	return ticketDraft{
		prefix: category.CodePrefix,
		ticket: &model.Ticket{
			TicketID:      uuid.New(),
			Kind:          model.TicketKindPackage,
			CategoryID:    category.CategoryID,
			CategoryName:  category.Name,
			PackageID:     &packageID,
			Price:         pkg.PricePerPerson,
			MaxUsage:      item.Quantity,
			Status:        model.TicketStatusUnused,
			CreatedBy:     staff.ID,
			CreatedByName: staff.Name,
			Shift:         staff.Shift,
		},
	}, nil
}

// resolveNIM normalizes and validates the student ID for one ticket unit.
// Duplicates are rejected across the whole batch, not just within one item.
func resolveNIM(item model.CartItem, category *model.Category, unit int, seen map[string]bool) (*string, error) {
	raw := ""
	if unit < len(item.NIMs) {
		raw = item.NIMs[unit]
	}
	normalized := strings.ToUpper(strings.TrimSpace(raw))

	if normalized == "" {
		if category.RequiresNIM {
			return nil, fmt.Errorf("%w: %s unit %d", apperrors.ErrMissingStudentID, category.Name, unit+1)
		}
		return nil, nil
	}

	if seen[normalized] {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateStudentID, normalized)
	}
	seen[normalized] = true

	return &normalized, nil
}

// reserveSequences allocates the batch's block of daily sequence numbers.
// When Redis is down it falls back to counting today's rows; either way the
// unique index on ticket_code remains the real collision guard.
func (s *IssuanceServiceImpl) reserveSequences(ctx context.Context, now time.Time, count int) int {
	start, err := s.sequences.ReserveRange(ctx, now, count)
	if err == nil {
		return start
	}

	logger.WithComponent("issuance").Warn("sequence allocator unavailable, falling back to row count", zap.Error(err))

	n, cerr := s.tickets.CountCreatedOn(ctx, now)
	if cerr != nil {
		logger.WithComponent("issuance").Warn("row count fallback failed, starting sequence at 1", zap.Error(cerr))
		return 1
	}
	return n + 1
}

func (s *IssuanceServiceImpl) persistBatch(ctx context.Context, drafts []ticketDraft, now time.Time, startSeq int) error {
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		err := s.insertBatchTx(ctx, drafts)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrTicketCodeConflict) {
			return err
		}

		logger.WithComponent("issuance").Warn("ticket code collision, regenerating",
			zap.Int("attempt", attempt+1))
		if rerr := assignCodes(drafts, now, startSeq); rerr != nil {
			return rerr
		}
	}

	return fmt.Errorf("%w: could not find unique ticket codes after %d attempts", apperrors.ErrIssuanceFailed, maxCodeRetries)
}

func (s *IssuanceServiceImpl) insertBatchTx(ctx context.Context, drafts []ticketDraft) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tickets := make([]*model.Ticket, len(drafts))
	for i, draft := range drafts {
		tickets[i] = draft.ticket
	}

	if err := s.tickets.InsertBatch(ctx, tx, tickets); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// assignCodes stamps (or re-stamps, after a collision) every draft's ticket
// code. Sequence numbers stay consecutive in cart order; only the random
// suffix changes between attempts.
func assignCodes(drafts []ticketDraft, day time.Time, startSeq int) error {
	for i, draft := range drafts {
		code, err := ticketcode.Generate(draft.prefix, day, startSeq+i)
		if err != nil {
			return err
		}
		draft.ticket.TicketCode = code
	}
	return nil
}
