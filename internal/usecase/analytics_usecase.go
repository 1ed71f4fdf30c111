package usecase

import (
	"gretastore/internal/domain/entity"
)

// GetAnalytics aggregates the in-memory order history. It does not modify
// the catalog; SyncSalesCounts does that explicitly.
func (s *StoreUseCase) GetAnalytics() entity.Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var analytics entity.Analytics
	for _, o := range s.orders {
		if o.PaymentStatus == entity.PaymentPaid {
			analytics.TotalRevenue += o.Total
		}
	}
	analytics.TotalOrders = len(s.orders)
	if analytics.TotalOrders > 0 {
		analytics.AverageOrderValue = analytics.TotalRevenue / float64(analytics.TotalOrders)
	}

	sold, order := soldQuantities(s.orders)

	// Strict comparison: on a tie the product seen first keeps the spot.
	var topID int64
	found := false
	maxSold := 0
	for _, id := range order {
		if sold[id] > maxSold {
			maxSold = sold[id]
			topID = id
			found = true
		}
	}

	var top *entity.Product
	if found {
		if idx := indexOfProduct(s.products, topID); idx >= 0 {
			p := s.products[idx].Clone()
			top = &p
		}
	}
	if top == nil && len(s.products) > 0 {
		p := s.products[0].Clone()
		top = &p
	}
	if top != nil {
		top.Sales = maxSold
	}
	analytics.TopSellingProduct = top

	return analytics
}

// SyncSalesCounts writes the quantity sold across all orders onto each
// catalog product that appears in the history and returns how many products
// changed.
func (s *StoreUseCase) SyncSalesCounts() int {
	s.mu.Lock()
	sold, _ := soldQuantities(s.orders)
	updated := 0
	for i := range s.products {
		qty, ok := sold[s.products[i].ID]
		if !ok || s.products[i].Sales == qty {
			continue
		}
		s.products[i].Sales = qty
		updated++
	}
	s.mu.Unlock()

	if updated > 0 {
		s.notifier.Notify(EventProductsUpdated)
	}
	return updated
}

// soldQuantities sums item quantities per product ID and also returns the
// IDs in the order they were first seen.
func soldQuantities(orders []entity.Order) (map[int64]int, []int64) {
	sold := make(map[int64]int)
	var order []int64
	for _, o := range orders {
		for _, item := range o.Items {
			if _, ok := sold[item.ID]; !ok {
				order = append(order, item.ID)
			}
			sold[item.ID] += item.Quantity
		}
	}
	return sold, order
}
