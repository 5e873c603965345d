package service

import (
	"context"
	"sort"
	"time"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/repository"
)

// ReportService builds the admin daily summary. Completion is always
// computed from usage_count against max_usage; the stored status flag is
// never consulted for aggregation.
type ReportService interface {
	DailyReport(ctx context.Context, day time.Time) (*model.DailyReport, error)
}

type ReportServiceImpl struct {
	tickets  repository.TicketRepository
	scanLogs repository.ScanLogRepository
}

func NewReportService(ticketRepository repository.TicketRepository, scanLogRepository repository.ScanLogRepository) ReportService {
	return &ReportServiceImpl{
		tickets:  ticketRepository,
		scanLogs: scanLogRepository,
	}
}

func (s *ReportServiceImpl) DailyReport(ctx context.Context, day time.Time) (*model.DailyReport, error) {
	tickets, err := s.tickets.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	scans, err := s.scanLogs.CountOn(ctx, day)
	if err != nil {
		return nil, err
	}

	report := &model.DailyReport{
		Date:         day.Format("2006-01-02"),
		UsesRedeemed: scans,
	}

	byCategory := make(map[string]*model.CategorySales)
	byShift := make(map[string]*model.ShiftSales)

	for _, ticket := range tickets {
		value := ticket.TotalValue()

		report.TicketsSold++
		report.PeopleCovered += ticket.MaxUsage
		report.Revenue += value
		if ticket.UsageState() == model.UsageStateExhausted {
			report.FullyUsed++
		}

		cat, ok := byCategory[ticket.CategoryName]
		if !ok {
			cat = &model.CategorySales{CategoryName: ticket.CategoryName}
			byCategory[ticket.CategoryName] = cat
		}
		cat.TicketsSold++
		cat.PeopleCovered += ticket.MaxUsage
		cat.Revenue += value

		shift, ok := byShift[ticket.Shift]
		if !ok {
			shift = &model.ShiftSales{Shift: ticket.Shift}
			byShift[ticket.Shift] = shift
		}
		shift.TicketsSold++
		shift.Revenue += value
	}

	report.Categories = sortedCategorySales(byCategory)
	report.Shifts = sortedShiftSales(byShift)

	return report, nil
}

func sortedCategorySales(m map[string]*model.CategorySales) []model.CategorySales {
	out := make([]model.CategorySales, 0, len(m))
	for _, v := range m {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out
}

func sortedShiftSales(m map[string]*model.ShiftSales) []model.ShiftSales {
	out := make([]model.ShiftSales, 0, len(m))
	for _, v := range m {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shift < out[j].Shift })
	return out
}
