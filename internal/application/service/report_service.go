package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	"github.com/sangkips/daybook-api/internal/domain/report"
	"github.com/sangkips/daybook-api/internal/domain/repository"
	"github.com/sangkips/daybook-api/pkg/apperror"
	"github.com/sangkips/daybook-api/pkg/logger"
	"github.com/sangkips/daybook-api/pkg/utils"
	"github.com/sangkips/daybook-api/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

const msgDatesRequired = "Start date and end date are required"

// ReportService aggregates the book over date ranges
type ReportService struct {
	saleRepo     repository.SaleRepository
	expenseRepo  repository.ExpenseRepository
	purchaseRepo repository.PurchaseRepository
	location     *time.Location
	log          *logrus.Logger
}

// NewReportService creates a new report service. location decides which
// calendar day "today" is for the dashboard.
func NewReportService(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	purchaseRepo repository.PurchaseRepository,
	location *time.Location,
	log *logrus.Logger,
) *ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportService{
		saleRepo:     saleRepo,
		expenseRepo:  expenseRepo,
		purchaseRepo: purchaseRepo,
		location:     location,
		log:          log,
	}
}

// DashboardOutput is the single-day view
type DashboardOutput struct {
	Date      string          `json:"date"`
	Report    report.Report   `json:"report"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// SummaryOutput is the period view
type SummaryOutput struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Report    report.Report   `json:"report"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

type periodRecords struct {
	sales     []entity.Sale
	expenses  []entity.Expense
	purchases []entity.Purchase
}

// ComputeReport aggregates every record dated within [start, end]
func (s *ReportService) ComputeReport(ctx context.Context, start, end string) (report.Report, error) {
	records, err := s.load(ctx, start, end)
	if err != nil {
		return report.Report{}, err
	}
	return report.Aggregate(records.sales, records.expenses, records.purchases), nil
}

// Dashboard reports a single day, today when date is empty. Net profit
// ignores purchases.
func (s *ReportService) Dashboard(ctx context.Context, date string) (*DashboardOutput, error) {
	if date == "" {
		date = utils.Today(s.location)
	}

	r, err := s.ComputeReport(ctx, date, date)
	if err != nil {
		return nil, err
	}
	return &DashboardOutput{
		Date:      date,
		Report:    r,
		NetProfit: r.DashboardNetProfit(),
	}, nil
}

// Summary reports a period with net profit after purchases
func (s *ReportService) Summary(ctx context.Context, start, end string) (*SummaryOutput, error) {
	r, err := s.ComputeReport(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &SummaryOutput{
		StartDate: start,
		EndDate:   end,
		Report:    r,
		NetProfit: r.PeriodNetProfit(),
	}, nil
}

// ExportReport writes the period as an xlsx workbook: a summary sheet plus
// one sheet per record kind
func (s *ReportService) ExportReport(ctx context.Context, start, end string, w io.Writer) error {
	records, err := s.load(ctx, start, end)
	if err != nil {
		return err
	}
	r := report.Aggregate(records.sales, records.expenses, records.purchases)

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Period", start + " to " + end},
		{"Total sales", r.TotalSales.InexactFloat64()},
		{"Sales (bankak)", r.SalesBreakdown.Bankak.InexactFloat64()},
		{"Sales (cash)", r.SalesBreakdown.Cash.InexactFloat64()},
		{"Total expenses", r.TotalExpenses.InexactFloat64()},
		{"Expenses (bankak)", r.ExpensesBreakdown.Bankak.InexactFloat64()},
		{"Expenses (cash)", r.ExpensesBreakdown.Cash.InexactFloat64()},
		{"Net bankak", r.NetBankak.InexactFloat64()},
		{"Net cash", r.NetCash.InexactFloat64()},
		{"Total purchases", r.TotalPurchases.InexactFloat64()},
		{"Net profit", r.PeriodNetProfit().InexactFloat64()},
	}
	if err := writeRows(f, summary, rows); err != nil {
		return err
	}

	sales := [][]interface{}{{"Date", "Total", "Bankak", "Cash"}}
	for _, sale := range records.sales {
		sales = append(sales, []interface{}{sale.Date, sale.TotalAmount.InexactFloat64(), sale.BankakAmount.InexactFloat64(), sale.CashAmount.InexactFloat64()})
	}
	expenses := [][]interface{}{{"Date", "Description", "Payment method", "Amount"}}
	for _, e := range records.expenses {
		expenses = append(expenses, []interface{}{e.Date, e.Description, e.PaymentMethod.String(), e.Amount.InexactFloat64()})
	}
	purchases := [][]interface{}{{"Date", "Item", "Amount"}}
	for _, p := range records.purchases {
		purchases = append(purchases, []interface{}{p.Date, p.ItemName, p.Amount.InexactFloat64()})
	}

	for _, sheet := range []struct {
		name string
		rows [][]interface{}
	}{
		{"Sales", sales},
		{"Expenses", expenses},
		{"Purchases", purchases},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// load validates the range and fetches the three collections in parallel.
// Store errors are returned unchanged.
func (s *ReportService) load(ctx context.Context, start, end string) (*periodRecords, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	var records periodRecords
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records.sales, err = s.saleRepo.ListByDateRange(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		records.expenses, err = s.expenseRepo.ListByDateRange(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		records.purchases, err = s.purchaseRepo.ListByDateRange(gctx, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.LogError(s.log, "ReportService", "load", "range read failed",
			map[string]string{"startDate": start, "endDate": end}, err)
		return nil, err
	}
	return &records, nil
}

func checkRange(start, end string) error {
	if start == "" || end == "" {
		return apperror.NewPreconditionError(msgDatesRequired)
	}
	if !validation.IsISODate(start) || !validation.IsISODate(end) {
		return apperror.NewPreconditionError("Dates must be in YYYY-MM-DD format")
	}
	if start > end {
		return apperror.NewPreconditionError("Start date must not be after end date")
	}
	return nil
}
