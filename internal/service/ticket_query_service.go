package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/repository"
)

// TicketQueryService backs the register history and reprint screens. It
// never mutates tickets.
type TicketQueryService interface {
	GetByCode(ctx context.Context, code string) (*model.Ticket, error)
	ListByBatchID(ctx context.Context, batchID uuid.UUID) ([]*model.Ticket, error)
	ListByDate(ctx context.Context, day time.Time) ([]*model.Ticket, error)
}

type TicketQueryServiceImpl struct {
	repo repository.TicketRepository
}

func NewTicketQueryService(repo repository.TicketRepository) TicketQueryService {
	return &TicketQueryServiceImpl{repo: repo}
}

func (s *TicketQueryServiceImpl) GetByCode(ctx context.Context, code string) (*model.Ticket, error) {
	return s.repo.FindByCode(ctx, strings.TrimSpace(code))
}

func (s *TicketQueryServiceImpl) ListByBatchID(ctx context.Context, batchID uuid.UUID) ([]*model.Ticket, error) {
	return s.repo.FindByBatchID(ctx, batchID)
}

func (s *TicketQueryServiceImpl) ListByDate(ctx context.Context, day time.Time) ([]*model.Ticket, error) {
	return s.repo.FindByDate(ctx, day)
}
