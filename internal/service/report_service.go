package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"aquaflow/internal/model"
	"aquaflow/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reportService implements ReportService. Revenue aggregation walks the
// vendor's delivered orders and groups them by the delivery date's calendar
// month. The customer names in the breakdown come from the orders, so they
// are the names at order time.
type reportService struct {
	orders store.OrderStore
	logger zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(st *store.Store, logger zerolog.Logger) ReportService {
	return &reportService{
		orders: st.Orders,
		logger: logger.With().Str("service", "report").Logger(),
	}
}

func (s *reportService) Monthly(ctx context.Context, vendorID uuid.UUID, year int, month int) (*model.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, model.NewValidationError("Month must be between 1 and 12")
	}

	reports, err := s.aggregate(ctx, vendorID, year)
	if err != nil {
		return nil, err
	}

	name := time.Month(month).String()
	for i := range reports {
		if reports[i].Month == name {
			return &reports[i], nil
		}
	}

	// No delivered orders that month: an empty report, not an error.
	return &model.MonthlyReport{
		Month:       name,
		Year:        year,
		PerCustomer: map[string]model.CustomerBreakdown{},
	}, nil
}

func (s *reportService) Yearly(ctx context.Context, vendorID uuid.UUID, year int) ([]model.MonthlyReport, error) {
	return s.aggregate(ctx, vendorID, year)
}

// aggregate builds the per-month reports of one year, ordered by month.
func (s *reportService) aggregate(ctx context.Context, vendorID uuid.UUID, year int) ([]model.MonthlyReport, error) {
	orders, err := s.orders.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	byMonth := make(map[time.Month]*model.MonthlyReport)
	for _, o := range orders {
		if o.Status != model.StatusDelivered {
			continue
		}
		if o.DeliveryDate.Year() != year {
			continue
		}

		m := o.DeliveryDate.Month()
		rep, ok := byMonth[m]
		if !ok {
			rep = &model.MonthlyReport{
				Month:       m.String(),
				Year:        year,
				PerCustomer: map[string]model.CustomerBreakdown{},
			}
			byMonth[m] = rep
		}

		rep.TotalOrders++
		rep.TotalRevenue += o.Total

		key := o.CustomerID.String()
		cb := rep.PerCustomer[key]
		if cb.Name == "" {
			cb.Name = o.CustomerName
		}
		cb.Orders++
		cb.Amount += o.Total
		rep.PerCustomer[key] = cb
	}

	months := make([]time.Month, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	reports := make([]model.MonthlyReport, 0, len(months))
	for _, m := range months {
		reports = append(reports, *byMonth[m])
	}
	return reports, nil
}
