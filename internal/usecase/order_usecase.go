package usecase

import (
	"context"
	"sort"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/errors"
	"gretastore/pkg/logger"
)

const fastMovingSales = 50

func (s *StoreUseCase) loadOrders(ctx context.Context) {
	orders, err := s.orderRepo.ListByDateDesc(ctx)
	if err != nil {
		logger.Error("Fetch orders failed: %v", err)
		return
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
}

// PlaceOrder turns the current cart into an order. Payment is not verified,
// so every order starts paid and pending shipment. Once the backend has
// stored the order the ordered quantities leave the cart; anything added
// while the order was being created stays.
func (s *StoreUseCase) PlaceOrder(ctx context.Context, customer entity.CustomerInfo) (entity.Order, error) {
	s.mu.RLock()
	items := cloneCart(s.cart)
	total := cartTotal(s.cart)
	s.mu.RUnlock()

	if len(items) == 0 {
		return entity.Order{}, errors.BadRequest("Cart is empty", nil)
	}

	order := entity.Order{
		CustomerName:  customer.Name,
		Email:         customer.Email,
		Items:         items,
		Total:         total,
		Status:        entity.OrderPending,
		PaymentStatus: entity.PaymentPaid,
		Date:          s.now().UTC(),
	}

	created, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return entity.Order{}, errors.Unavailable("Failed to place order", err)
	}

	s.mu.Lock()
	s.orders = append([]entity.Order{created.Clone()}, s.orders...)
	s.setSyncLocked(entity.KindOrder, created.ID, entity.SyncConfirmed)
	s.mu.Unlock()

	s.mutateCart(ctx, func(cart []entity.CartItem) []entity.CartItem {
		return subtractItems(cart, items)
	})
	s.notifier.Notify(EventOrdersUpdated)
	logger.Info("Order %s placed for %s: %.2f", created.ID, created.Email, created.Total)

	return created, nil
}

// subtractItems removes the ordered quantity of each product from cart and
// drops lines that reach zero.
func subtractItems(cart, ordered []entity.CartItem) []entity.CartItem {
	sold := make(map[int64]int, len(ordered))
	for _, item := range ordered {
		sold[item.ID] += item.Quantity
	}

	left := cart[:0]
	for _, item := range cart {
		item.Quantity -= sold[item.ID]
		if item.Quantity > 0 {
			left = append(left, item)
		}
	}
	return left
}

func (s *StoreUseCase) UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) error {
	if !status.Valid() {
		return errors.BadRequest("Invalid order status", nil)
	}

	s.mu.Lock()
	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return errors.NotFound("Order", nil)
	}
	s.orders[idx].Status = status
	s.setSyncLocked(entity.KindOrder, orderID, entity.SyncPending)
	s.mu.Unlock()
	s.notifier.Notify(EventOrdersUpdated)

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		s.setSync(entity.KindOrder, orderID, entity.SyncFailed)
		return errors.Unavailable("Failed to update order status", err)
	}
	s.setSync(entity.KindOrder, orderID, entity.SyncConfirmed)
	return nil
}

func (s *StoreUseCase) FilterOrders(filter entity.OrderFilter) []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.Order
	for _, o := range s.orders {
		if !matchesFilter(filter.Status, string(o.Status)) {
			continue
		}
		if !matchesFilter(filter.PaymentStatus, string(o.PaymentStatus)) {
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}

func matchesFilter(want, got string) bool {
	return want == "" || want == entity.FilterAll || want == got
}

// Customers summarises order history per email, most recently active first.
func (s *StoreUseCase) Customers() []entity.CustomerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byEmail := make(map[string]*entity.CustomerSummary)
	var emails []string
	for _, o := range s.orders {
		c, ok := byEmail[o.Email]
		if !ok {
			c = &entity.CustomerSummary{Email: o.Email}
			byEmail[o.Email] = c
			emails = append(emails, o.Email)
		}
		c.TotalOrders++
		c.TotalSpent += o.Total
		if c.Name == "" || o.Date.After(c.LastActive) {
			c.Name = o.CustomerName
			c.LastActive = o.Date
		}
	}

	out := make([]entity.CustomerSummary, 0, len(emails))
	for _, email := range emails {
		out = append(out, *byEmail[email])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastActive.After(out[j].LastActive) })
	return out
}

func (s *StoreUseCase) Alerts() entity.Alerts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var alerts entity.Alerts
	for _, o := range s.orders {
		if o.Status == entity.OrderPending {
			alerts.PendingOrders++
		}
	}
	for _, p := range s.products {
		if p.Sales > fastMovingSales {
			alerts.FastMovingProducts++
		}
	}
	return alerts
}

func sortOrdersByDateDesc(orders []entity.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Date.After(orders[j].Date) })
}
