package service

import (
	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
)

// AnalyticsSummary aggregates the in-memory orders for the dashboard.
// Revenue only counts paid, non-cancelled orders.
type AnalyticsSummary struct {
	TotalOrders       int                        `json:"total_orders"`
	TotalRevenue      int64                      `json:"total_revenue"`
	UnpaidTotal       int64                      `json:"unpaid_total"`
	OrdersByStatus    map[domain.OrderStatus]int `json:"orders_by_status"`
	RevenueByCategory map[domain.Category]int64  `json:"revenue_by_category"`
}

func (s *OrderService) Summary() AnalyticsSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := AnalyticsSummary{
		TotalOrders:       len(s.orders),
		OrdersByStatus:    make(map[domain.OrderStatus]int),
		RevenueByCategory: make(map[domain.Category]int64),
	}

	for i := range s.orders {
		o := &s.orders[i]
		summary.OrdersByStatus[o.Status]++

		if o.Status == domain.StatusCancelled {
			continue
		}

		if o.PaymentStatus == domain.PaymentPaid {
			summary.TotalRevenue += o.Total
			for _, li := range o.Items {
				summary.RevenueByCategory[li.Category] += li.Total()
			}
		} else {
			summary.UnpaidTotal += o.Total
		}
	}

	return summary
}
