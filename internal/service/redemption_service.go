package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/queue"
	"github.com/mumtazka/kolam-sub000/internal/repository"
	apperrors "github.com/mumtazka/kolam-sub000/pkg/app_errors"
	"github.com/mumtazka/kolam-sub000/pkg/logger"
)

type RedemptionService interface {
	// Redeem consumes one use of the ticket behind the scanned code and
	// returns a verdict. INVALID and USED are normal outcomes; only
	// infrastructure failures produce ERROR.
	Redeem(ctx context.Context, code string, staff model.StaffContext, poolID string) *model.Verdict
}

type RedemptionServiceImpl struct {
	tickets  repository.TicketRepository
	scanLogs queue.ScanQueue
}

func NewRedemptionService(ticketRepository repository.TicketRepository, scanQueue queue.ScanQueue) RedemptionService {
	return &RedemptionServiceImpl{
		tickets:  ticketRepository,
		scanLogs: scanQueue,
	}
}

func (s *RedemptionServiceImpl) Redeem(ctx context.Context, code string, staff model.StaffContext, poolID string) *model.Verdict {
	code = strings.TrimSpace(code)
	if code == "" {
		return &model.Verdict{
			Success: false,
			Status:  model.ScanStatusInvalid,
			Message: "empty ticket code",
		}
	}

	now := time.Now()
	ticket, err := s.tickets.ConsumeUsage(ctx, code, staff.Name, now)
	if err != nil {
		return s.rejectionVerdict(ctx, code, err)
	}

	s.publishScanLog(ctx, ticket, staff, poolID, now)

	return &model.Verdict{
		Success: true,
		Status:  model.ScanStatusValid,
		Message: validMessage(ticket),
		Ticket:  ticket,
	}
}

// rejectionVerdict maps a failed conditional update to the matching verdict.
// Unknown codes and exhausted tickets are expected outcomes and mutate
// nothing; anything else is an infrastructure error the operator should
// retry.
func (s *RedemptionServiceImpl) rejectionVerdict(ctx context.Context, code string, err error) *model.Verdict {
	switch {
	case errors.Is(err, apperrors.ErrTicketNotFound):
		return &model.Verdict{
			Success: false,
			Status:  model.ScanStatusInvalid,
			Message: "ticket not found",
		}

	case errors.Is(err, apperrors.ErrTicketExhausted):
		// re-read for the prior scan details shown to the operator
		ticket, ferr := s.tickets.FindByCode(ctx, code)
		if ferr != nil {
			return errorVerdict(ferr)
		}
		return &model.Verdict{
			Success: false,
			Status:  model.ScanStatusUsed,
			Message: usedMessage(ticket),
			Ticket:  ticket,
		}

	default:
		logger.WithComponent("redemption").Error("redeem failed", zap.String("code", code), zap.Error(err))
		return errorVerdict(err)
	}
}

// publishScanLog queues the audit row for the accepted scan. A queue outage
// must not turn a valid entry into a rejection, so failures are only logged.
func (s *RedemptionServiceImpl) publishScanLog(ctx context.Context, ticket *model.Ticket, staff model.StaffContext, poolID string, now time.Time) {
	log := &model.ScanLog{
		TicketID:      ticket.ID,
		TicketCode:    ticket.TicketCode,
		CategoryName:  ticket.CategoryName,
		PoolID:        poolID,
		Shift:         staff.Shift,
		ScannedBy:     staff.ID,
		ScannedByName: staff.Name,
		ScannedAt:     now,
	}

	if err := s.scanLogs.PublishScan(ctx, log); err != nil {
		logger.WithComponent("redemption").Warn("publish scan log failed",
			zap.String("ticket_code", ticket.TicketCode), zap.Error(err))
	}
}

func validMessage(ticket *model.Ticket) string {
	if ticket.Kind == model.TicketKindPackage {
		return fmt.Sprintf("entry %d of %d accepted", ticket.UsageCount, ticket.MaxUsage)
	}
	return "ticket validated"
}

func usedMessage(ticket *model.Ticket) string {
	if ticket.ScannedAt != nil {
		by := ""
		if ticket.ScannedBy != nil {
			by = " by " + *ticket.ScannedBy
		}
		return fmt.Sprintf("ticket already used at %s%s", ticket.ScannedAt.Format(time.RFC3339), by)
	}
	return "ticket already used"
}

func errorVerdict(err error) *model.Verdict {
	return &model.Verdict{
		Success: false,
		Status:  model.ScanStatusError,
		Message: "system error: " + err.Error(),
	}
}
