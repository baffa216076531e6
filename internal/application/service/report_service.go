package service

import (
	"context"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Period is a calendar window relative to now
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod validates a report period; empty means daily
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return Period(s), nil
	}
	return "", apperror.NewValidationError(apperror.FieldError{
		Field:   "period",
		Message: "Period must be one of: daily, monthly, yearly",
	})
}

// Bounds returns the half-open window [from, to) of the calendar day, month
// or year containing now, in loc.
func (p Period) Bounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	now = now.In(loc)
	switch p {
	case PeriodYearly:
		from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(1, 0, 0)
	case PeriodMonthly:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0)
	default:
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 0, 1)
	}
}

// ReportSummary aggregates bills and manual entries over one period
type ReportSummary struct {
	Period         Period          `json:"period"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	BillCount      int             `json:"billCount"`
	BillTotal      decimal.Decimal `json:"billTotal"`
	ManualSales    decimal.Decimal `json:"manualSales"`
	ManualExpenses decimal.Decimal `json:"manualExpenses"`
	NetEarnings    decimal.Decimal `json:"netEarnings"`
}

// Summarize filters bills and entries to the period containing now and sums
// bill totals and entry amounts by type.
func Summarize(period Period, now time.Time, loc *time.Location, bills []entity.Bill, entries []entity.ManualEntry) *ReportSummary {
	from, to := period.Bounds(now, loc)
	in := func(t time.Time) bool {
		return !t.Before(from) && t.Before(to)
	}

	sum := &ReportSummary{
		Period:         period,
		From:           from,
		To:             to,
		BillTotal:      decimal.Zero,
		ManualSales:    decimal.Zero,
		ManualExpenses: decimal.Zero,
	}
	for _, b := range bills {
		if in(b.Date) {
			sum.BillCount++
			sum.BillTotal = sum.BillTotal.Add(b.Total)
		}
	}
	for _, e := range entries {
		if !in(e.Date) {
			continue
		}
		switch e.Type {
		case enum.EntryTypeSale:
			sum.ManualSales = sum.ManualSales.Add(e.Amount)
		case enum.EntryTypeExpense:
			sum.ManualExpenses = sum.ManualExpenses.Add(e.Amount)
		}
	}
	sum.NetEarnings = sum.BillTotal.Add(sum.ManualSales).Sub(sum.ManualExpenses)
	return sum
}

// ReportService computes period summaries over the full bill and entry sets
type ReportService struct {
	billRepo  repository.BillRepository
	entryRepo repository.ManualEntryRepository
	loc       *time.Location
	now       Clock
}

// NewReportService creates a new report service
func NewReportService(billRepo repository.BillRepository, entryRepo repository.ManualEntryRepository, loc *time.Location) *ReportService {
	return &ReportService{
		billRepo:  billRepo,
		entryRepo: entryRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// Summary returns the summary for the named period
func (s *ReportService) Summary(ctx context.Context, rawPeriod string) (*ReportSummary, error) {
	period, err := ParsePeriod(rawPeriod)
	if err != nil {
		return nil, err
	}

	bills, err := s.billRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(period, s.now(), s.loc, bills, entries), nil
}
